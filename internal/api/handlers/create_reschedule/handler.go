package create_reschedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	reschedulesSvc "github.com/m04kA/SMC-ScheduleService/internal/service/reschedules"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReservationNotFound = "бронирование не найдено"
	msgInvalidInput        = "некорректные входные данные"
	msgUnauthorized        = "требуется аутентификация"
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

// Handle POST /api/v1/reschedule-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestedBy, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reschedule-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRequest(r.Context(), req.ToServiceInput(requestedBy))
	if err != nil {
		switch {
		case errors.Is(err, reschedulesSvc.ErrReservationNotFound):
			h.logger.Warn("POST /reschedule-requests - Reservation not found: reservation_id=%d", req.ScheduleID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reschedulesSvc.ErrInvalidInput):
			h.logger.Warn("POST /reschedule-requests - Invalid input: user_id=%d, error=%v", requestedBy, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reschedule-requests - Failed to create request: user_id=%d, error=%v",
				requestedBy, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule-requests - Request created: request_id=%d, reservation_id=%d, user_id=%d",
		result.ID, req.ScheduleID, requestedBy)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
