package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	availabilitySvc "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBlockID     = "некорректный идентификатор блока"
	msgBlockNotFound      = "блок доступности не найден"
	msgConflict           = "интервал пересекается с существующим блоком доступности"
	msgAccessDenied       = "доступ запрещен"
	msgInvalidInput       = "некорректные входные данные"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	blockID, err := strconv.ParseInt(mux.Vars(r)["blockId"], 10, 64)
	if err != nil || blockID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	var req UpdateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/%d - Invalid request body: %v", blockID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateBlock(r.Context(), blockID, req.ToServiceRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrBlockNotFound):
			h.logger.Warn("PUT /availability/%d - Block not found", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, availabilitySvc.ErrConflict):
			h.logger.Warn("PUT /availability/%d - Conflict: user_id=%d", blockID, actorID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, availabilitySvc.ErrAccessDenied):
			h.logger.Warn("PUT /availability/%d - Access denied: user_id=%d", blockID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availabilitySvc.ErrInvalidInput):
			h.logger.Warn("PUT /availability/%d - Invalid input: %v", blockID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /availability/%d - Failed to update block: %v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/%d - Block updated: user_id=%d", blockID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
