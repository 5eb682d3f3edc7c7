package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedules/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
)

// ScanService интерфейс сервиса автоматических сканов
type ScanService interface {
	SendJobStartReminders(ctx context.Context, minutesBefore int) (*models.ScanResult, error)
	SendLatenessAlerts(ctx context.Context) (*models.ScanResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AutomationScheduler периодически запускает сканы напоминаний и опозданий.
// Работает независимо от запросов: один фоновый цикл на процесс.
// Идемпотентность между тиками обеспечивают флаги на самих записях,
// поэтому рестарт процесса или параллельный экземпляр не дублируют уведомления.
type AutomationScheduler struct {
	scanService     ScanService
	interval        time.Duration
	reminderMinutes int
	collector       *metrics.Metrics
	logger          Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Option настройка планировщика
type Option func(*AutomationScheduler)

// WithReminderWindow задает горизонт напоминаний в минутах
func WithReminderWindow(minutes int) Option {
	return func(s *AutomationScheduler) {
		s.reminderMinutes = minutes
	}
}

// New создает планировщик с заданным интервалом между тиками
func New(scanService ScanService, interval time.Duration, collector *metrics.Metrics, logger Logger, opts ...Option) *AutomationScheduler {
	if interval <= 0 {
		interval = domain.DefaultScanIntervalMinutes * time.Minute
	}

	s := &AutomationScheduler{
		scanService:     scanService,
		interval:        interval,
		reminderMinutes: domain.DefaultReminderMinutesBefore,
		collector:       collector,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start запускает фоновый цикл планировщика
// Повторный вызов на уже работающем планировщике — no-op с предупреждением
func (s *AutomationScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("AutomationScheduler: Start called while already running, ignoring")
		return
	}

	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	s.logger.Info("AutomationScheduler: starting with interval %s", s.interval)
	go s.run(s.stopCh, s.doneCh)
}

// Stop останавливает фоновый цикл и дожидается его завершения
func (s *AutomationScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	s.logger.Info("AutomationScheduler: stopped")
}

func (s *AutomationScheduler) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick(context.Background())
		case <-stopCh:
			return
		}
	}
}

// Tick выполняет один проход обоих сканов: сначала напоминания, затем опоздания
func (s *AutomationScheduler) Tick(ctx context.Context) {
	s.runScan(ctx, "job_start_reminders", func(ctx context.Context) (*models.ScanResult, error) {
		return s.scanService.SendJobStartReminders(ctx, s.reminderMinutes)
	})
	s.runScan(ctx, "lateness_alerts", s.scanService.SendLatenessAlerts)
}

func (s *AutomationScheduler) runScan(ctx context.Context, name string, scan func(ctx context.Context) (*models.ScanResult, error)) {
	result, err := scan(ctx)
	if err != nil {
		s.logger.Error("AutomationScheduler: scan %s failed: %v", name, err)
		if s.collector != nil {
			s.collector.ScanRunsTotal.WithLabelValues(name, "error").Inc()
		}
		return
	}

	if s.collector != nil {
		s.collector.ScanRunsTotal.WithLabelValues(name, "ok").Inc()
		s.collector.ScanItemsProcessed.WithLabelValues(name, "processed").Add(float64(result.Processed))
		s.collector.ScanItemsProcessed.WithLabelValues(name, "failed").Add(float64(result.Failed))
	}

	if result.Processed > 0 || result.Failed > 0 {
		s.logger.Info("AutomationScheduler: scan %s processed=%d failed=%d",
			name, result.Processed, result.Failed)
	}
}
