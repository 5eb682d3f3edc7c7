package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	createAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgConflict           = "интервал пересекается с существующим блоком доступности"
	msgInvalidInterval    = "время окончания должно быть позже времени начала"
	msgInvalidRecurrence  = "некорректный паттерн повторения"
	msgInvalidInput       = "некорректные входные данные"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	useCase CreateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CreateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(providerID))
	if err != nil {
		switch {
		case errors.Is(err, createAvailability.ErrConflict):
			h.logger.Warn("POST /availability - Conflict: provider_id=%d", providerID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, createAvailability.ErrInvalidInterval):
			h.logger.Warn("POST /availability - Invalid interval: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createAvailability.ErrInvalidRecurrence):
			h.logger.Warn("POST /availability - Invalid recurrence: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, createAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability - Failed to create block: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Block created: block_id=%d, provider_id=%d", result.Block.ID, providerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
