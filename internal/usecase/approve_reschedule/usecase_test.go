package approve_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeRescheduleRepo struct {
	request      *domain.RescheduleRequest
	approveCalls int
}

func (r *fakeRescheduleRepo) GetByID(_ context.Context, id int64) (*domain.RescheduleRequest, error) {
	if r.request == nil || r.request.ID != id {
		return nil, rescheduleRepo.ErrRequestNotFound
	}
	copied := *r.request
	return &copied, nil
}

func (r *fakeRescheduleRepo) Approve(_ context.Context, _ int64, approvedBy int64, approvedAt time.Time) error {
	// Повторяет guard по статусу из UPDATE ... WHERE status = 'pending'
	if r.request == nil || r.request.Status != domain.ReschedulePending {
		return rescheduleRepo.ErrNotPending
	}
	r.approveCalls++
	r.request.Status = domain.RescheduleApproved
	r.request.ApprovedBy = &approvedBy
	r.request.ApprovedAt = &approvedAt
	return nil
}

type fakeScheduleRepo struct {
	reservation  *domain.ScheduleReservation
	updatedStart *time.Time
	updatedEnd   *time.Time
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleReservation, error) {
	if r.reservation == nil || r.reservation.ID != id {
		return nil, scheduleRepo.ErrReservationNotFound
	}
	copied := *r.reservation
	return &copied, nil
}

func (r *fakeScheduleRepo) UpdateTimes(_ context.Context, _ int64, start, end time.Time) error {
	r.updatedStart = &start
	r.updatedEnd = &end
	return nil
}

type shiftCall struct {
	blockID int64
	start   time.Time
	end     time.Time
}

type fakeAvailabilityRepo struct {
	shifts   []shiftCall
	shiftErr error
}

func (r *fakeAvailabilityRepo) ShiftInterval(_ context.Context, id int64, start, end time.Time) error {
	if r.shiftErr != nil {
		return r.shiftErr
	}
	r.shifts = append(r.shifts, shiftCall{blockID: id, start: start, end: end})
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

func pendingRequest() *domain.RescheduleRequest {
	return &domain.RescheduleRequest{
		ID:                 5,
		ScheduleID:         10,
		JobID:              7,
		RequestedBy:        100,
		RequestedFor:       42,
		OriginalStartTime:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		OriginalEndTime:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		RequestedStartTime: time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC),
		RequestedEndTime:   time.Date(2026, 3, 4, 16, 0, 0, 0, time.UTC),
		Reason:             "Клиент попросил перенести",
		Status:             domain.ReschedulePending,
	}
}

func linkedReservation(blockID int64) *domain.ScheduleReservation {
	reservation := &domain.ScheduleReservation{
		ID:                 10,
		ProviderID:         42,
		JobID:              7,
		ScheduledStartTime: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		ScheduledEndTime:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		Status:             domain.ReservationScheduled,
	}
	if blockID > 0 {
		reservation.AvailabilityBlockID = &blockID
	}
	return reservation
}

func newTestUseCase(
	reschedules *fakeRescheduleRepo,
	schedules *fakeScheduleRepo,
	availability *fakeAvailabilityRepo,
	notify *fakeNotifyClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(reschedules, schedules, availability, notify, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ApprovesAndMovesReservation(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	reschedules := &fakeRescheduleRepo{request: pendingRequest()}
	schedules := &fakeScheduleRepo{reservation: linkedReservation(77)}
	availability := &fakeAvailabilityRepo{}
	notify := &fakeNotifyClient{}

	uc := newTestUseCase(reschedules, schedules, availability, notify, now)

	resp, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, domain.RescheduleApproved, resp.Request.Status)
	require.NotNil(t, resp.Request.ApprovedBy)
	assert.Equal(t, int64(42), *resp.Request.ApprovedBy)
	require.NotNil(t, resp.Request.ApprovedAt)
	assert.Equal(t, now, *resp.Request.ApprovedAt)

	assert.Equal(t, domain.ReservationRescheduled, resp.Reservation.Status)
	assert.Equal(t, resp.Request.RequestedStartTime, resp.Reservation.ScheduledStartTime)
	assert.Equal(t, resp.Request.RequestedEndTime, resp.Reservation.ScheduledEndTime)

	require.NotNil(t, schedules.updatedStart)
	assert.Equal(t, resp.Request.RequestedStartTime, *schedules.updatedStart)
	assert.Equal(t, resp.Request.RequestedEndTime, *schedules.updatedEnd)
}

func TestExecute_ShiftsLinkedBlock(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	reschedules := &fakeRescheduleRepo{request: pendingRequest()}
	schedules := &fakeScheduleRepo{reservation: linkedReservation(77)}
	availability := &fakeAvailabilityRepo{}
	notify := &fakeNotifyClient{}

	uc := newTestUseCase(reschedules, schedules, availability, notify, now)

	_, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
	require.NoError(t, err)

	require.Len(t, availability.shifts, 1)
	assert.Equal(t, int64(77), availability.shifts[0].blockID)
	assert.Equal(t, time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC), availability.shifts[0].start)
	assert.Equal(t, time.Date(2026, 3, 4, 16, 0, 0, 0, time.UTC), availability.shifts[0].end)
}

func TestExecute_UnlinkedReservationSkipsBlockShift(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	reschedules := &fakeRescheduleRepo{request: pendingRequest()}
	schedules := &fakeScheduleRepo{reservation: linkedReservation(0)}
	availability := &fakeAvailabilityRepo{}
	notify := &fakeNotifyClient{}

	uc := newTestUseCase(reschedules, schedules, availability, notify, now)

	resp, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
	require.NoError(t, err)

	assert.Empty(t, availability.shifts)
	assert.Equal(t, domain.ReservationRescheduled, resp.Reservation.Status)
}

func TestExecute_TerminalReservationCannotBeRescheduled(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	for _, status := range []domain.ReservationStatus{
		domain.ReservationCancelled,
		domain.ReservationCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			reservation := linkedReservation(77)
			reservation.Status = status

			reschedules := &fakeRescheduleRepo{request: pendingRequest()}
			schedules := &fakeScheduleRepo{reservation: reservation}
			availability := &fakeAvailabilityRepo{}
			notify := &fakeNotifyClient{}

			uc := newTestUseCase(reschedules, schedules, availability, notify, now)

			_, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
			assert.ErrorIs(t, err, ErrInvalidTransition)

			assert.Nil(t, schedules.updatedStart)
			assert.Empty(t, availability.shifts)
			assert.Empty(t, notify.sent)
		})
	}
}

func TestExecute_SecondApproveReturnsNotPending(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	reschedules := &fakeRescheduleRepo{request: pendingRequest()}
	schedules := &fakeScheduleRepo{reservation: linkedReservation(77)}
	availability := &fakeAvailabilityRepo{}
	notify := &fakeNotifyClient{}

	uc := newTestUseCase(reschedules, schedules, availability, notify, now)

	_, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, 1, reschedules.approveCalls)
}

func TestExecute_OnlyCounterpartyMayApprove(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	reschedules := &fakeRescheduleRepo{request: pendingRequest()}
	schedules := &fakeScheduleRepo{reservation: linkedReservation(77)}
	availability := &fakeAvailabilityRepo{}
	notify := &fakeNotifyClient{}

	uc := newTestUseCase(reschedules, schedules, availability, notify, now)

	t.Run("инициатор не может одобрить собственный запрос", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 100})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("посторонний пользователь получает отказ", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	assert.Zero(t, reschedules.approveCalls)
	assert.Nil(t, schedules.updatedStart)
}

func TestExecute_NotifiesRequesterAfterApprove(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	reschedules := &fakeRescheduleRepo{request: pendingRequest()}
	schedules := &fakeScheduleRepo{reservation: linkedReservation(77)}
	availability := &fakeAvailabilityRepo{}
	notify := &fakeNotifyClient{}

	uc := newTestUseCase(reschedules, schedules, availability, notify, now)

	_, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
	require.NoError(t, err)

	require.Len(t, notify.sent, 1)
	assert.Equal(t, int64(100), notify.sent[0].TargetUserID)
	assert.Equal(t, notifyservice.TypeRescheduleResult, notify.sent[0].Type)
	assert.Equal(t, "approved", notify.sent[0].Data["result"])
}

func TestExecute_NotificationFailureDoesNotFailOperation(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	reschedules := &fakeRescheduleRepo{request: pendingRequest()}
	schedules := &fakeScheduleRepo{reservation: linkedReservation(77)}
	availability := &fakeAvailabilityRepo{}
	notify := &fakeNotifyClient{err: assert.AnError}

	uc := newTestUseCase(reschedules, schedules, availability, notify, now)

	resp, err := uc.Execute(context.Background(), &Request{RequestID: 5, ApprovedBy: 42})
	require.NoError(t, err)
	assert.Equal(t, domain.RescheduleApproved, resp.Request.Status)
}

func TestExecute_RequestNotFound(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRescheduleRepo{}, &fakeScheduleRepo{}, &fakeAvailabilityRepo{}, &fakeNotifyClient{}, now)

	_, err := uc.Execute(context.Background(), &Request{RequestID: 404, ApprovedBy: 42})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRescheduleRepo{}, &fakeScheduleRepo{}, &fakeAvailabilityRepo{}, &fakeNotifyClient{}, now)

	_, err := uc.Execute(context.Background(), &Request{RequestID: 0, ApprovedBy: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
