package create_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
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
	overlapping  []*domain.AvailabilityBlock
	findCalls    int
	createCalls  int
	createdBlock *domain.AvailabilityBlock
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	r.createCalls++
	created := *block
	created.ID = 1
	r.createdBlock = &created
	return &created, nil
}

func (r *fakeAvailabilityRepo) FindOverlapping(_ context.Context, _ int64, _, _ time.Time, _ *int64) ([]*domain.AvailabilityBlock, error) {
	r.findCalls++
	return r.overlapping, nil
}

func validRequest() *Request {
	return &Request{
		ProviderID: 42,
		Title:      "Рабочие часы",
		StartTime:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		Type:       domain.BlockTypeAvailable,
	}
}

func TestExecute_CreatesBlock(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Block.ID)
	assert.Equal(t, 1, repo.findCalls)
	assert.Equal(t, 1, repo.createCalls)
}

func TestExecute_ConflictWritesNothing(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		overlapping: []*domain.AvailabilityBlock{{ID: 7, Type: domain.BlockTypeAvailable}},
	}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, resp)
	assert.Equal(t, 0, repo.createCalls)
}

func TestExecute_BusyBlockSkipsConflictCheck(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		overlapping: []*domain.AvailabilityBlock{{ID: 7}},
	}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.Type = domain.BlockTypeBusy

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	// Для busy блока пересечение конфликтом не считается
	assert.Equal(t, 0, repo.findCalls)
	assert.Equal(t, 1, repo.createCalls)
}

func TestExecute_InvalidInterval(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.EndTime = req.StartTime

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidInterval)
	assert.Equal(t, 0, repo.createCalls)
}

func TestExecute_RecurrenceValidation(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	t.Run("recurring without pattern", func(t *testing.T) {
		req := validRequest()
		req.IsRecurring = true

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRecurrence)
	})

	t.Run("until and count together", func(t *testing.T) {
		req := validRequest()
		req.IsRecurring = true
		req.Recurrence = &domain.RecurrencePattern{
			Frequency: domain.FrequencyDaily,
			Interval:  1,
			Until:     ptr.Ptr(req.EndTime.AddDate(0, 1, 0)),
			Count:     ptr.Ptr(5),
		}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRecurrence)
	})

	t.Run("pattern on single block", func(t *testing.T) {
		req := validRequest()
		req.Recurrence = &domain.RecurrencePattern{Frequency: domain.FrequencyDaily, Interval: 1}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRecurrence)
	})
}
