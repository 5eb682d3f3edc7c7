package approve_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	approveReschedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/approve_reschedule"
)

const (
	msgInvalidRequestID    = "некорректный идентификатор запроса"
	msgRequestNotFound     = "запрос на перенос не найден"
	msgReservationNotFound = "бронирование не найдено"
	msgNotPending          = "запрос уже решён"
	msgInvalidTransition   = "бронирование уже нельзя перенести"
	msgAccessDenied        = "доступ запрещен"
	msgUnauthorized        = "требуется аутентификация"
)

type Handler struct {
	useCase ApproveRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase ApproveRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedule-requests/{requestId}/approve
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

	result, err := h.useCase.Execute(r.Context(), &approveReschedule.Request{
		RequestID:  requestID,
		ApprovedBy: actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveReschedule.ErrRequestNotFound):
			h.logger.Warn("POST /reschedule-requests/%d/approve - Request not found", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, approveReschedule.ErrReservationNotFound):
			h.logger.Warn("POST /reschedule-requests/%d/approve - Reservation not found", requestID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, approveReschedule.ErrNotPending):
			h.logger.Warn("POST /reschedule-requests/%d/approve - Request already resolved", requestID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, approveReschedule.ErrInvalidTransition):
			h.logger.Warn("POST /reschedule-requests/%d/approve - Reservation no longer active", requestID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, approveReschedule.ErrAccessDenied):
			h.logger.Warn("POST /reschedule-requests/%d/approve - Access denied: user_id=%d", requestID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /reschedule-requests/%d/approve - Failed to approve: %v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule-requests/%d/approve - Request approved: user_id=%d, reservation_id=%d",
		requestID, actorID, result.Reservation.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
