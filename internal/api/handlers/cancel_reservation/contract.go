package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedules/models"
)

type ScheduleService interface {
	CancelReservation(ctx context.Context, reservationID int64, actorID int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
