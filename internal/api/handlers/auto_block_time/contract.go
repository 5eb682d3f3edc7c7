package auto_block_time

import (
	"context"

	autoBlockTime "github.com/m04kA/SMC-ScheduleService/internal/usecase/auto_block_time"
)

type AutoBlockTimeUseCase interface {
	Execute(ctx context.Context, req *autoBlockTime.Request) (*autoBlockTime.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
