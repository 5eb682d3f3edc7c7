package reject_reschedule

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequestID   = "некорректный идентификатор запроса"
	msgRequestNotFound    = "запрос на перенос не найден"
	msgNotPending         = "запрос уже решён"
	msgAccessDenied       = "доступ запрещен"
	msgInvalidInput       = "некорректные входные данные"
	msgUnauthorized       = "требуется аутентификация"
)

// RejectRescheduleRequest HTTP request model
type RejectRescheduleRequest struct {
	Reason string `json:"reason"`
}

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

// Handle POST /api/v1/reschedule-requests/{requestId}/reject
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

	var req RejectRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reschedule-requests/%d/reject - Invalid request body: %v", requestID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reject(r.Context(), requestID, actorID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, reschedulesSvc.ErrRequestNotFound):
			h.logger.Warn("POST /reschedule-requests/%d/reject - Request not found", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, reschedulesSvc.ErrNotPending):
			h.logger.Warn("POST /reschedule-requests/%d/reject - Request already resolved", requestID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, reschedulesSvc.ErrAccessDenied):
			h.logger.Warn("POST /reschedule-requests/%d/reject - Access denied: user_id=%d", requestID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reschedulesSvc.ErrInvalidInput):
			h.logger.Warn("POST /reschedule-requests/%d/reject - Invalid input: %v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reschedule-requests/%d/reject - Failed to reject: %v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule-requests/%d/reject - Request rejected: user_id=%d", requestID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
