package auto_block_time

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/jobservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

// AvailabilityRepository интерфейс репозитория блоков доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error)
	FindOverlapping(ctx context.Context, providerID int64, start, end time.Time, excludeID *int64) ([]*domain.AvailabilityBlock, error)
}

// ScheduleRepository интерфейс репозитория бронирований
type ScheduleRepository interface {
	Create(ctx context.Context, reservation *domain.ScheduleReservation) (*domain.ScheduleReservation, error)
}

// JobServiceClient интерфейс клиента для JobService
type JobServiceClient interface {
	GetJob(ctx context.Context, jobID int64) (*jobservice.Job, error)
}

// NotifyServiceClient интерфейс клиента диспетчера уведомлений
type NotifyServiceClient interface {
	Send(ctx context.Context, notification notifyservice.Notification) error
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
