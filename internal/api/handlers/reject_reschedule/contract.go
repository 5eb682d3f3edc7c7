package reject_reschedule

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedules/models"
)

type RescheduleService interface {
	Reject(ctx context.Context, requestID int64, actorID int64, reason string) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
