package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedules/models"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns int
}

func (l *recordingLogger) Info(string, ...interface{}) {}

func (l *recordingLogger) Warn(string, ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns++
}

func (l *recordingLogger) Error(string, ...interface{}) {}

func (l *recordingLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warns
}

type fakeScanService struct {
	mu    sync.Mutex
	calls []string

	reminderMinutes int
	remindersErr    error
	latenessErr     error
}

func (s *fakeScanService) SendJobStartReminders(_ context.Context, minutesBefore int) (*models.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "reminders")
	s.reminderMinutes = minutesBefore
	if s.remindersErr != nil {
		return nil, s.remindersErr
	}
	return &models.ScanResult{Processed: 1}, nil
}

func (s *fakeScanService) SendLatenessAlerts(_ context.Context) (*models.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "lateness")
	if s.latenessErr != nil {
		return nil, s.latenessErr
	}
	return &models.ScanResult{}, nil
}

func (s *fakeScanService) recordedCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func TestTick_RunsBothScansInOrder(t *testing.T) {
	scans := &fakeScanService{}
	s := New(scans, time.Minute, nil, &recordingLogger{})

	s.Tick(context.Background())

	assert.Equal(t, []string{"reminders", "lateness"}, scans.recordedCalls())
}

func TestTick_ReminderWindowOption(t *testing.T) {
	scans := &fakeScanService{}
	s := New(scans, time.Minute, nil, &recordingLogger{}, WithReminderWindow(90))

	s.Tick(context.Background())

	assert.Equal(t, 90, scans.reminderMinutes)
}

func TestTick_ReminderFailureDoesNotSkipLatenessScan(t *testing.T) {
	scans := &fakeScanService{remindersErr: assert.AnError}
	s := New(scans, time.Minute, nil, &recordingLogger{})

	s.Tick(context.Background())

	assert.Equal(t, []string{"reminders", "lateness"}, scans.recordedCalls())
}

func TestStartStop(t *testing.T) {
	t.Run("Stop завершает фоновый цикл", func(t *testing.T) {
		scans := &fakeScanService{}
		s := New(scans, time.Hour, nil, &recordingLogger{})

		s.Start()
		s.Stop()

		// После Stop цикл завершён: doneCh закрыт, повторный Stop безопасен
		s.Stop()
	})

	t.Run("повторный Start игнорируется", func(t *testing.T) {
		logger := &recordingLogger{}
		s := New(&fakeScanService{}, time.Hour, nil, logger)

		s.Start()
		s.Start()
		defer s.Stop()

		assert.Equal(t, 1, logger.warnCount())
	})

	t.Run("Stop без Start безопасен", func(t *testing.T) {
		s := New(&fakeScanService{}, time.Hour, nil, &recordingLogger{})
		s.Stop()
	})
}

func TestNew_DefaultsInterval(t *testing.T) {
	s := New(&fakeScanService{}, 0, nil, &recordingLogger{})
	require.NotNil(t, s)
	assert.Positive(t, s.interval)
}
