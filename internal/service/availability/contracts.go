package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория блоков доступности
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error)
	FindOverlapping(ctx context.Context, providerID int64, start, end time.Time, excludeID *int64) ([]*domain.AvailabilityBlock, error)
	FindInRange(ctx context.Context, providerID int64, start, end time.Time) ([]*domain.AvailabilityBlock, error)
	Update(ctx context.Context, block *domain.AvailabilityBlock) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория бронирований
type ScheduleRepository interface {
	FindInRange(ctx context.Context, filter domain.ScheduleRangeFilter) ([]*domain.ScheduleReservation, error)
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
