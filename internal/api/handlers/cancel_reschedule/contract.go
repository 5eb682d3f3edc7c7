package cancel_reschedule

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedules/models"
)

type RescheduleService interface {
	Withdraw(ctx context.Context, requestID int64, actorID int64) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
