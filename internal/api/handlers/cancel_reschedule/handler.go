package cancel_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	reschedulesSvc "github.com/m04kA/SMC-ScheduleService/internal/service/reschedules"
)

const (
	msgInvalidRequestID = "некорректный идентификатор запроса"
	msgRequestNotFound  = "запрос на перенос не найден"
	msgNotPending       = "запрос уже решён"
	msgAccessDenied     = "доступ запрещен"
	msgUnauthorized     = "требуется аутентификация"
)

type Handler struct {
	service RescheduleService
	logger  Logger
}

func NewHandler(service RescheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedule-requests/{requestId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	requestID, err := strconv.ParseInt(mux.Vars(r)["requestId"], 10, 64)
	if err != nil || requestID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	result, err := h.service.Withdraw(r.Context(), requestID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, reschedulesSvc.ErrRequestNotFound):
			h.logger.Warn("POST /reschedule-requests/%d/cancel - Request not found", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, reschedulesSvc.ErrNotPending):
			h.logger.Warn("POST /reschedule-requests/%d/cancel - Request already resolved", requestID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, reschedulesSvc.ErrAccessDenied):
			h.logger.Warn("POST /reschedule-requests/%d/cancel - Access denied: user_id=%d", requestID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /reschedule-requests/%d/cancel - Failed to withdraw: %v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule-requests/%d/cancel - Request withdrawn: user_id=%d", requestID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
