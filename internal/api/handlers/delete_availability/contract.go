package delete_availability

import "context"

type AvailabilityService interface {
	DeleteBlock(ctx context.Context, blockID int64, actorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
