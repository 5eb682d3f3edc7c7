package get_upcoming_reservations

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedules/models"
)

type ScheduleService interface {
	GetUpcoming(ctx context.Context, providerID int64, limit uint64) (*models.UpcomingReservationsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
