package start_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	schedulesSvc "github.com/m04kA/SMC-ScheduleService/internal/service/schedules"
)

const (
	msgInvalidReservationID = "некорректный идентификатор бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgAccessDenied         = "доступ запрещен"
	msgInvalidTransition    = "бронирование нельзя начать в текущем статусе"
	msgUnauthorized         = "требуется аутентификация"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.StartReservation(r.Context(), reservationID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, schedulesSvc.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/%d/start - Reservation not found", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, schedulesSvc.ErrAccessDenied):
			h.logger.Warn("POST /reservations/%d/start - Access denied: user_id=%d", reservationID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedulesSvc.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/%d/start - Invalid transition: %v", reservationID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /reservations/%d/start - Failed to start: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/%d/start - Reservation started: user_id=%d", reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
