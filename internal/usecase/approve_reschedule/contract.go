package approve_reschedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error)
	Approve(ctx context.Context, id int64, approvedBy int64, approvedAt time.Time) error
}

// ScheduleRepository интерфейс репозитория бронирований
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleReservation, error)
	UpdateTimes(ctx context.Context, id int64, start, end time.Time) error
}

// AvailabilityRepository интерфейс репозитория блоков доступности
type AvailabilityRepository interface {
	ShiftInterval(ctx context.Context, id int64, start, end time.Time) error
}

// NotifyServiceClient интерфейс клиента диспетчера уведомлений
type NotifyServiceClient interface {
	Send(ctx context.Context, notification notifyservice.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
