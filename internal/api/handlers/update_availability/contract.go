package update_availability

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateBlock(ctx context.Context, blockID int64, req *models.UpdateBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
