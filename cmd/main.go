package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveRescheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/approve_reschedule"
	autoBlockTimeHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/auto_block_time"
	cancelRescheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_reschedule"
	cancelReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/complete_reservation"
	createAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_availability"
	createRescheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_reschedule"
	deleteAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_availability"
	getCalendarHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_calendar"
	getPendingReschedulesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_pending_reschedules"
	getUpcomingReservationsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_upcoming_reservations"
	rejectRescheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/reject_reschedule"
	startReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/start_reservation"
	updateAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	jobServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/jobservice"
	notifyServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduler"
	availabilityService "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	reschedulesService "github.com/m04kA/SMC-ScheduleService/internal/service/reschedules"
	schedulesService "github.com/m04kA/SMC-ScheduleService/internal/service/schedules"
	approveRescheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/approve_reschedule"
	autoBlockTimeUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/auto_block_time"
	createAvailabilityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	jobClient := jobServiceClient.NewClient(
		cfg.JobService.URL,
		time.Duration(cfg.JobService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (JobService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.JobService.URL, cfg.JobService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		availabilityRepository *availabilityRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		rescheduleRepository   *rescheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		rescheduleRepository = rescheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		rescheduleRepository = rescheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &schedulesService.RealTimeProvider{}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	schedulesSvc := schedulesService.NewService(
		scheduleRepository,
		notifyClient,
		timeProvider,
		log,
	)
	reschedulesSvc := reschedulesService.NewService(
		rescheduleRepository,
		scheduleRepository,
		notifyClient,
		log,
	)

	// Инициализируем use cases
	createAvailabilityUseCase := createAvailabilityUC.NewUseCase(
		availabilityRepository,
		txMgr,
		log,
	)
	autoBlockTimeUseCase := autoBlockTimeUC.NewUseCase(
		availabilityRepository,
		scheduleRepository,
		jobClient,
		notifyClient,
		txMgr,
		log,
	)
	approveRescheduleUseCase := approveRescheduleUC.NewUseCase(
		rescheduleRepository,
		scheduleRepository,
		availabilityRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAvailability := createAvailabilityHandler.NewHandler(createAvailabilityUseCase, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	getCalendar := getCalendarHandler.NewHandler(availabilitySvc, log)
	autoBlockTime := autoBlockTimeHandler.NewHandler(autoBlockTimeUseCase, log)
	startReservation := startReservationHandler.NewHandler(schedulesSvc, log)
	completeReservation := completeReservationHandler.NewHandler(schedulesSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(schedulesSvc, log)
	getUpcomingReservations := getUpcomingReservationsHandler.NewHandler(schedulesSvc, log)
	createReschedule := createRescheduleHandler.NewHandler(reschedulesSvc, log)
	approveReschedule := approveRescheduleHandler.NewHandler(approveRescheduleUseCase, log)
	rejectReschedule := rejectRescheduleHandler.NewHandler(reschedulesSvc, log)
	cancelReschedule := cancelRescheduleHandler.NewHandler(reschedulesSvc, log)
	getPendingReschedules := getPendingReschedulesHandler.NewHandler(reschedulesSvc, log)

	// Инициализируем фоновый планировщик
	var automation *scheduler.AutomationScheduler
	if cfg.Scheduler.Enabled {
		automation = scheduler.New(
			schedulesSvc,
			time.Duration(cfg.Scheduler.ScanIntervalMinutes)*time.Minute,
			metricsCollector,
			log,
			scheduler.WithReminderWindow(cfg.Scheduler.ReminderMinutesBefore),
		)
		automation.Start()
	} else {
		log.Warn("Automation scheduler disabled by config")
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарное окно провайдера
	api.HandleFunc("/providers/{providerId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Предстоящие бронирования провайдера
	api.HandleFunc("/providers/{providerId}/reservations/upcoming",
		getUpcomingReservations.Handle).Methods(http.MethodGet)

	// Автоматическая блокировка времени (вызывается движком заказов)
	api.HandleFunc("/reservations", autoBlockTime.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность ---
	protected.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{blockId}", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/availability/{blockId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/reservations/{reservationId}/start", startReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// --- Переносы ---
	protected.HandleFunc("/reschedule-requests", createReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reschedule-requests/{requestId}/approve", approveReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reschedule-requests/{requestId}/reject", rejectReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reschedule-requests/{requestId}/cancel", cancelReschedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/reschedule-requests/pending",
		getPendingReschedules.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновый планировщик
	if automation != nil {
		automation.Stop()
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
