package get_pending_reschedules

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedules/models"
)

type RescheduleService interface {
	GetPendingFor(ctx context.Context, userID int64) (*models.PendingRequestsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
