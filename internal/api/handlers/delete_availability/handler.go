package delete_availability

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
	msgInvalidBlockID = "некорректный идентификатор блока"
	msgBlockNotFound  = "блок доступности не найден"
	msgAccessDenied   = "доступ запрещен"
	msgUnauthorized   = "требуется аутентификация"
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

// Handle DELETE /api/v1/availability/{blockId}
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

	if err := h.service.DeleteBlock(r.Context(), blockID, actorID); err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrBlockNotFound):
			h.logger.Warn("DELETE /availability/%d - Block not found", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, availabilitySvc.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/%d - Access denied: user_id=%d", blockID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /availability/%d - Failed to delete block: %v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/%d - Block deleted: user_id=%d", blockID, actorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
