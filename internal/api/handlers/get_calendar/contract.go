package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetCalendarView(ctx context.Context, req *models.GetCalendarViewRequest) (*models.CalendarViewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
