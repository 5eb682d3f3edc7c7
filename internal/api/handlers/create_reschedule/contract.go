package create_reschedule

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedules/models"
)

type RescheduleService interface {
	CreateRequest(ctx context.Context, input *models.CreateRequestInput) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
