package auto_block_time

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	autoBlockTime "github.com/m04kA/SMC-ScheduleService/internal/usecase/auto_block_time"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgJobNotFound        = "работа не найдена"
	msgInvalidInterval    = "время окончания должно быть позже времени начала"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase AutoBlockTimeUseCase
	logger  Logger
}

func NewHandler(useCase AutoBlockTimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AutoBlockTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, autoBlockTime.ErrJobNotFound):
			h.logger.Warn("POST /reservations - Job not found: job_id=%d", req.JobID)
			handlers.RespondNotFound(w, msgJobNotFound)

		case errors.Is(err, autoBlockTime.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: provider_id=%d, job_id=%d", req.ProviderID, req.JobID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, autoBlockTime.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: provider_id=%d, job_id=%d, error=%v",
				req.ProviderID, req.JobID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to block time: provider_id=%d, job_id=%d, error=%v",
				req.ProviderID, req.JobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, provider_id=%d, job_id=%d",
		result.Reservation.ID, req.ProviderID, req.JobID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
