package schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

// ScheduleRepository интерфейс репозитория бронирований
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleReservation, error)
	FindUpcoming(ctx context.Context, providerID int64, now time.Time, limit uint64) ([]*domain.ScheduleReservation, error)
	FindNeedingReminder(ctx context.Context, now time.Time, minutesBefore int) ([]*domain.ScheduleReservation, error)
	FindLate(ctx context.Context, now time.Time) ([]*domain.ScheduleReservation, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) error
	MarkLatenessAlertSent(ctx context.Context, id int64) error
	Start(ctx context.Context, id int64, at time.Time) error
	Complete(ctx context.Context, id int64, at time.Time) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Send(ctx context.Context, notification notifyservice.Notification) error
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
