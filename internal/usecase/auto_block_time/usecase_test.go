package auto_block_time

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/jobservice"
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

type fakeAvailabilityRepo struct {
	overlapping []*domain.AvailabilityBlock
	created     []*domain.AvailabilityBlock
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	created := *block
	created.ID = int64(len(r.created) + 100)
	r.created = append(r.created, &created)
	return &created, nil
}

func (r *fakeAvailabilityRepo) FindOverlapping(_ context.Context, _ int64, _, _ time.Time, _ *int64) ([]*domain.AvailabilityBlock, error) {
	return r.overlapping, nil
}

type fakeScheduleRepo struct {
	created *domain.ScheduleReservation
}

func (r *fakeScheduleRepo) Create(_ context.Context, reservation *domain.ScheduleReservation) (*domain.ScheduleReservation, error) {
	created := *reservation
	created.ID = 1
	r.created = &created
	return &created, nil
}

type fakeJobClient struct {
	job *jobservice.Job
	err error
}

func (c *fakeJobClient) GetJob(_ context.Context, _ int64) (*jobservice.Job, error) {
	return c.job, c.err
}

type fakeNotifyClient struct {
	sent []notifyservice.Notification
	err  error
}

func (c *fakeNotifyClient) Send(_ context.Context, n notifyservice.Notification) error {
	c.sent = append(c.sent, n)
	return c.err
}

func validRequest() *Request {
	return &Request{
		ProviderID: 42,
		JobID:      7,
		StartTime:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestExecute_NoConflictLinksBusyBlock(t *testing.T) {
	availRepo := &fakeAvailabilityRepo{}
	schedRepo := &fakeScheduleRepo{}
	notify := &fakeNotifyClient{}
	uc := NewUseCase(availRepo, schedRepo,
		&fakeJobClient{job: &jobservice.Job{ID: 7, Title: "Сборка мебели"}},
		notify, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, availRepo.created, 1)
	assert.Equal(t, domain.BlockTypeBusy, availRepo.created[0].Type)
	assert.Equal(t, "Занято: Сборка мебели", availRepo.created[0].Title)

	require.NotNil(t, resp.Reservation.AvailabilityBlockID)
	assert.Equal(t, availRepo.created[0].ID, *resp.Reservation.AvailabilityBlockID)
	assert.Equal(t, domain.ReservationScheduled, resp.Reservation.Status)
}

func TestExecute_ConflictLeavesReservationUnlinked(t *testing.T) {
	availRepo := &fakeAvailabilityRepo{
		overlapping: []*domain.AvailabilityBlock{{ID: 9, Type: domain.BlockTypeAvailable}},
	}
	schedRepo := &fakeScheduleRepo{}
	uc := NewUseCase(availRepo, schedRepo,
		&fakeJobClient{job: &jobservice.Job{ID: 7, Title: "Сборка мебели"}},
		&fakeNotifyClient{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	// Бронирование создано, но без блока занятости
	assert.Empty(t, availRepo.created)
	assert.Nil(t, resp.Reservation.AvailabilityBlockID)
	assert.NotNil(t, schedRepo.created)
}

func TestExecute_NotifiesProvider(t *testing.T) {
	notify := &fakeNotifyClient{}
	uc := NewUseCase(&fakeAvailabilityRepo{}, &fakeScheduleRepo{},
		&fakeJobClient{job: &jobservice.Job{ID: 7, Title: "Сборка мебели"}},
		notify, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, notify.sent, 1)
	assert.Equal(t, int64(42), notify.sent[0].TargetUserID)
	assert.Equal(t, notifyservice.TypeJobScheduled, notify.sent[0].Type)
}

func TestExecute_NotificationFailureDoesNotFailOperation(t *testing.T) {
	notify := &fakeNotifyClient{err: assert.AnError}
	uc := NewUseCase(&fakeAvailabilityRepo{}, &fakeScheduleRepo{},
		&fakeJobClient{job: &jobservice.Job{ID: 7, Title: "Сборка мебели"}},
		notify, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotNil(t, resp.Reservation)
}

func TestExecute_UnknownJob(t *testing.T) {
	schedRepo := &fakeScheduleRepo{}
	uc := NewUseCase(&fakeAvailabilityRepo{}, schedRepo,
		&fakeJobClient{err: jobservice.ErrJobNotFound},
		&fakeNotifyClient{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrJobNotFound)
	assert.Nil(t, schedRepo.created)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := NewUseCase(&fakeAvailabilityRepo{}, &fakeScheduleRepo{},
		&fakeJobClient{}, &fakeNotifyClient{}, fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.EndTime = req.StartTime

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
