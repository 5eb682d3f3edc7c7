package reschedules

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error)
	FindPendingFor(ctx context.Context, userID int64) ([]*domain.RescheduleRequest, error)
	Reject(ctx context.Context, id int64, reason string) error
	Cancel(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория бронирований
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleReservation, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Send(ctx context.Context, notification notifyservice.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
