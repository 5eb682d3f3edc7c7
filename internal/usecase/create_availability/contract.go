package create_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория блоков доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error)
	FindOverlapping(ctx context.Context, providerID int64, start, end time.Time, excludeID *int64) ([]*domain.AvailabilityBlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
