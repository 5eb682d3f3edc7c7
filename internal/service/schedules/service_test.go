package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeScheduleRepo struct {
	reservations map[int64]*domain.ScheduleReservation
	upcoming     []*domain.ScheduleReservation
	upcomingLim  uint64

	markReminderErr map[int64]error
	markAlertErr    map[int64]error
}

func newFakeScheduleRepo(reservations ...*domain.ScheduleReservation) *fakeScheduleRepo {
	repo := &fakeScheduleRepo{reservations: make(map[int64]*domain.ScheduleReservation)}
	for _, r := range reservations {
		repo.reservations[r.ID] = r
	}
	return repo
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleReservation, error) {
	reservation, ok := r.reservations[id]
	if !ok {
		return nil, scheduleRepo.ErrReservationNotFound
	}
	copied := *reservation
	return &copied, nil
}

func (r *fakeScheduleRepo) FindUpcoming(_ context.Context, _ int64, _ time.Time, limit uint64) ([]*domain.ScheduleReservation, error) {
	r.upcomingLim = limit
	return r.upcoming, nil
}

func (r *fakeScheduleRepo) FindNeedingReminder(_ context.Context, now time.Time, minutesBefore int) ([]*domain.ScheduleReservation, error) {
	var out []*domain.ScheduleReservation
	for _, reservation := range r.reservations {
		if reservation.NeedsReminderAt(now, minutesBefore) {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) FindLate(_ context.Context, now time.Time) ([]*domain.ScheduleReservation, error) {
	var out []*domain.ScheduleReservation
	for _, reservation := range r.reservations {
		if reservation.IsLateAt(now) {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) MarkReminderSent(_ context.Context, id int64, _ time.Time) error {
	if err := r.markReminderErr[id]; err != nil {
		return err
	}
	r.reservations[id].ReminderSent = true
	return nil
}

func (r *fakeScheduleRepo) MarkLatenessAlertSent(_ context.Context, id int64) error {
	if err := r.markAlertErr[id]; err != nil {
		return err
	}
	r.reservations[id].LatenessAlertSent = true
	return nil
}

func (r *fakeScheduleRepo) Start(_ context.Context, id int64, at time.Time) error {
	reservation := r.reservations[id]
	reservation.Status = domain.ReservationInProgress
	reservation.ActualStartTime = &at
	return nil
}

func (r *fakeScheduleRepo) Complete(_ context.Context, id int64, at time.Time) error {
	reservation := r.reservations[id]
	reservation.Status = domain.ReservationCompleted
	reservation.ActualEndTime = &at
	return nil
}

func (r *fakeScheduleRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	r.reservations[id].Status = status
	return nil
}

type fakeNotifyClient struct {
	sent []notifyservice.Notification
	err  error
}

func (c *fakeNotifyClient) Send(_ context.Context, n notifyservice.Notification) error {
	c.sent = append(c.sent, n)
	return c.err
}

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func scheduledReservation(id int64) *domain.ScheduleReservation {
	return &domain.ScheduleReservation{
		ID:                 id,
		ProviderID:         42,
		JobID:              7,
		ScheduledStartTime: testNow.Add(30 * time.Minute),
		ScheduledEndTime:   testNow.Add(150 * time.Minute),
		Status:             domain.ReservationScheduled,
	}
}

// lateReservation бронирование, начало которого прошло minutesAgo минут назад
func lateReservation(id int64, minutesAgo int) *domain.ScheduleReservation {
	reservation := scheduledReservation(id)
	reservation.ScheduledStartTime = testNow.Add(-time.Duration(minutesAgo) * time.Minute)
	reservation.ScheduledEndTime = reservation.ScheduledStartTime.Add(2 * time.Hour)
	return reservation
}

func newTestService(repo *fakeScheduleRepo, notify *fakeNotifyClient) *Service {
	return NewService(repo, notify, &fixedTimeProvider{now: testNow}, nopLogger{})
}

func TestStartReservation(t *testing.T) {
	t.Run("переводит scheduled в in_progress и фиксирует фактический старт", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1))
		svc := newTestService(repo, &fakeNotifyClient{})

		resp, err := svc.StartReservation(context.Background(), 1, 42)
		require.NoError(t, err)

		assert.Equal(t, domain.ReservationInProgress, resp.Status)
		require.NotNil(t, resp.ActualStartTime)
		assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), *resp.ActualStartTime)
		assert.Equal(t, domain.ReservationInProgress, repo.reservations[1].Status)
	})

	t.Run("запрещает старт из терминального статуса", func(t *testing.T) {
		reservation := scheduledReservation(1)
		reservation.Status = domain.ReservationCompleted
		repo := newFakeScheduleRepo(reservation)
		svc := newTestService(repo, &fakeNotifyClient{})

		_, err := svc.StartReservation(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("чужое бронирование недоступно", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1))
		svc := newTestService(repo, &fakeNotifyClient{})

		_, err := svc.StartReservation(context.Background(), 1, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("несуществующее бронирование", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo(), &fakeNotifyClient{})

		_, err := svc.StartReservation(context.Background(), 404, 42)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestCompleteReservation(t *testing.T) {
	t.Run("переводит in_progress в completed", func(t *testing.T) {
		reservation := scheduledReservation(1)
		reservation.Status = domain.ReservationInProgress
		repo := newFakeScheduleRepo(reservation)
		svc := newTestService(repo, &fakeNotifyClient{})

		resp, err := svc.CompleteReservation(context.Background(), 1, 42)
		require.NoError(t, err)

		assert.Equal(t, domain.ReservationCompleted, resp.Status)
		require.NotNil(t, resp.ActualEndTime)
	})

	t.Run("нельзя завершить незапущенную работу", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1))
		svc := newTestService(repo, &fakeNotifyClient{})

		_, err := svc.CompleteReservation(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCancelReservation(t *testing.T) {
	t.Run("отмена из scheduled", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1))
		svc := newTestService(repo, &fakeNotifyClient{})

		resp, err := svc.CancelReservation(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationCancelled, resp.Status)
	})

	t.Run("отмена из in_progress", func(t *testing.T) {
		reservation := scheduledReservation(1)
		reservation.Status = domain.ReservationInProgress
		repo := newFakeScheduleRepo(reservation)
		svc := newTestService(repo, &fakeNotifyClient{})

		_, err := svc.CancelReservation(context.Background(), 1, 42)
		require.NoError(t, err)
	})

	t.Run("повторная отмена невозможна", func(t *testing.T) {
		reservation := scheduledReservation(1)
		reservation.Status = domain.ReservationCancelled
		repo := newFakeScheduleRepo(reservation)
		svc := newTestService(repo, &fakeNotifyClient{})

		_, err := svc.CancelReservation(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestGetUpcoming(t *testing.T) {
	t.Run("применяет лимит по умолчанию", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		repo.upcoming = []*domain.ScheduleReservation{scheduledReservation(1), scheduledReservation(2)}
		svc := newTestService(repo, &fakeNotifyClient{})

		resp, err := svc.GetUpcoming(context.Background(), 42, 0)
		require.NoError(t, err)

		assert.Equal(t, uint64(defaultUpcomingLimit), repo.upcomingLim)
		assert.Equal(t, 2, resp.Total)
		assert.Len(t, resp.Reservations, 2)
	})

	t.Run("некорректный провайдер", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo(), &fakeNotifyClient{})

		_, err := svc.GetUpcoming(context.Background(), 0, 10)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSendJobStartReminders(t *testing.T) {
	t.Run("рассылает напоминания и выставляет флаг", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1), scheduledReservation(2))
		notify := &fakeNotifyClient{}
		svc := newTestService(repo, notify)

		result, err := svc.SendJobStartReminders(context.Background(), 60)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Processed)
		assert.Zero(t, result.Failed)
		assert.Len(t, notify.sent, 2)
		assert.True(t, repo.reservations[1].ReminderSent)
		assert.True(t, repo.reservations[2].ReminderSent)

		for _, n := range notify.sent {
			assert.Equal(t, int64(42), n.TargetUserID)
			assert.Equal(t, notifyservice.TypeJobStartReminder, n.Type)
			assert.Equal(t, notifyservice.PriorityHigh, n.Priority)
		}
	})

	t.Run("повторный запуск не дублирует уведомления", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1))
		notify := &fakeNotifyClient{}
		svc := newTestService(repo, notify)

		_, err := svc.SendJobStartReminders(context.Background(), 60)
		require.NoError(t, err)

		result, err := svc.SendJobStartReminders(context.Background(), 60)
		require.NoError(t, err)

		assert.Zero(t, result.Processed)
		assert.Len(t, notify.sent, 1)
	})

	t.Run("ошибка по одной записи не прерывает остальные", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1), scheduledReservation(2))
		repo.markReminderErr = map[int64]error{1: assert.AnError}
		svc := newTestService(repo, &fakeNotifyClient{})

		result, err := svc.SendJobStartReminders(context.Background(), 60)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, 1, result.Failed)
		assert.False(t, repo.reservations[1].ReminderSent)
		assert.True(t, repo.reservations[2].ReminderSent)
	})

	t.Run("ошибка отправки не мешает выставить флаг", func(t *testing.T) {
		repo := newFakeScheduleRepo(scheduledReservation(1))
		notify := &fakeNotifyClient{err: assert.AnError}
		svc := newTestService(repo, notify)

		result, err := svc.SendJobStartReminders(context.Background(), 60)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Processed)
		assert.True(t, repo.reservations[1].ReminderSent)
	})

	t.Run("границы окна напоминаний", func(t *testing.T) {
		onBoundary := scheduledReservation(1)
		onBoundary.ScheduledStartTime = testNow.Add(60 * time.Minute)
		pastBoundary := scheduledReservation(2)
		pastBoundary.ScheduledStartTime = testNow.Add(61 * time.Minute)
		alreadyStartedLate := lateReservation(3, 10)

		repo := newFakeScheduleRepo(onBoundary, pastBoundary, alreadyStartedLate)
		svc := newTestService(repo, &fakeNotifyClient{})

		result, err := svc.SendJobStartReminders(context.Background(), 60)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Processed)
		assert.True(t, repo.reservations[1].ReminderSent)
		assert.False(t, repo.reservations[2].ReminderSent)
		assert.False(t, repo.reservations[3].ReminderSent)
	})
}

func TestSendLatenessAlerts(t *testing.T) {
	t.Run("рассылает срочные уведомления и выставляет флаг", func(t *testing.T) {
		repo := newFakeScheduleRepo(lateReservation(1, 10))
		notify := &fakeNotifyClient{}
		svc := newTestService(repo, notify)

		result, err := svc.SendLatenessAlerts(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Processed)
		require.Len(t, notify.sent, 1)
		assert.Equal(t, notifyservice.TypeLatenessAlert, notify.sent[0].Type)
		assert.Equal(t, notifyservice.PriorityUrgent, notify.sent[0].Priority)
		assert.True(t, repo.reservations[1].LatenessAlertSent)
	})

	t.Run("повторный запуск не дублирует уведомления", func(t *testing.T) {
		repo := newFakeScheduleRepo(lateReservation(1, 10))
		notify := &fakeNotifyClient{}
		svc := newTestService(repo, notify)

		_, err := svc.SendLatenessAlerts(context.Background())
		require.NoError(t, err)

		result, err := svc.SendLatenessAlerts(context.Background())
		require.NoError(t, err)

		assert.Zero(t, result.Processed)
		assert.Len(t, notify.sent, 1)
	})

	t.Run("ошибка выставления флага учитывается как failed", func(t *testing.T) {
		repo := newFakeScheduleRepo(lateReservation(1, 10))
		repo.markAlertErr = map[int64]error{1: assert.AnError}
		svc := newTestService(repo, &fakeNotifyClient{})

		result, err := svc.SendLatenessAlerts(context.Background())
		require.NoError(t, err)

		assert.Zero(t, result.Processed)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("границы окна опоздания", func(t *testing.T) {
		// 4 минуты просрочки — ещё рано, 6 минут — уже опоздание,
		// 61 минута — окно пропущено
		repo := newFakeScheduleRepo(
			lateReservation(1, 4),
			lateReservation(2, 6),
			lateReservation(3, 61),
		)
		notify := &fakeNotifyClient{}
		svc := newTestService(repo, notify)

		result, err := svc.SendLatenessAlerts(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Processed)
		require.Len(t, notify.sent, 1)
		assert.False(t, repo.reservations[1].LatenessAlertSent)
		assert.True(t, repo.reservations[2].LatenessAlertSent)
		assert.False(t, repo.reservations[3].LatenessAlertSent)
	})
}
