package auto_block_time

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	jobClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/jobservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

// UseCase use case автоматической блокировки времени при принятии работы
type UseCase struct {
	availabilityRepo AvailabilityRepository
	scheduleRepo     ScheduleRepository
	jobClient        JobServiceClient
	notifyClient     NotifyServiceClient
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	scheduleRepo ScheduleRepository,
	jobClient JobServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		scheduleRepo:     scheduleRepo,
		jobClient:        jobClient,
		notifyClient:     notifyClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case блокировки времени под принятую работу.
//
// Бронирование создается ВСЕГДА. Блок занятости создается и связывается с
// бронированием, только если окно не пересекается с объявленной доступностью
// провайдера (available блоками). При конфликте бронирование остается без
// связанного блока.
//
// Проверка смотрит только на available блоки, но не на другие busy
// бронирования: два принятых задания могут занять одинаковый слот, если ни
// одно не пересекает объявленную доступность. Поведение сохранено осознанно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AutoBlockTime: provider=%d, job=%d, start=%s, end=%s",
		req.ProviderID, req.JobID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AutoBlockTime: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование работы
	job, err := uc.jobClient.GetJob(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, jobClient.ErrJobNotFound) {
			uc.logger.Warn("AutoBlockTime: job id=%d not found", req.JobID)
			return nil, ErrJobNotFound
		}
		uc.logger.Error("AutoBlockTime: failed to get job id=%d: %v", req.JobID, err)
		return nil, fmt.Errorf("%w: failed to get job: %v", ErrInternal, err)
	}

	var result *domain.ScheduleReservation

	// 3. Создание блока и бронирования в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Проверяем пересечение с объявленной доступностью
		overlapping, err := uc.availabilityRepo.FindOverlapping(txCtx, req.ProviderID, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("AutoBlockTime: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}

		// 3.2. Без конфликта — создаем busy блок и связываем с бронированием
		var blockID *int64
		if len(overlapping) == 0 {
			block := &domain.AvailabilityBlock{
				ProviderID: req.ProviderID,
				Title:      fmt.Sprintf("Занято: %s", job.Title),
				StartTime:  req.StartTime,
				EndTime:    req.EndTime,
				Type:       domain.BlockTypeBusy,
			}

			created, err := uc.availabilityRepo.Create(txCtx, block)
			if err != nil {
				uc.logger.Error("AutoBlockTime: failed to create busy block: %v", err)
				return fmt.Errorf("%w: failed to create busy block: %v", ErrInternal, err)
			}
			blockID = &created.ID
		} else {
			uc.logger.Info("AutoBlockTime: window overlaps %d availability block(s), reservation stays unlinked",
				len(overlapping))
		}

		// 3.3. Бронирование создается в любом случае
		reservation := &domain.ScheduleReservation{
			ProviderID:          req.ProviderID,
			JobID:               req.JobID,
			ApplicationID:       req.ApplicationID,
			ScheduledStartTime:  req.StartTime,
			ScheduledEndTime:    req.EndTime,
			Status:              domain.ReservationScheduled,
			AvailabilityBlockID: blockID,
			Location:            req.Location,
		}

		created, err := uc.scheduleRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("AutoBlockTime: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AutoBlockTime: successfully created reservation id=%d for job=%d (linked block: %t)",
		result.ID, result.JobID, result.HasLinkedBlock())

	// 4. Уведомляем провайдера о запланированной работе
	// Отправка best-effort: ошибка логируется и не влияет на результат
	uc.notifyProvider(ctx, result, job)

	return &Response{Reservation: result}, nil
}

// notifyProvider отправляет провайдеру уведомление job_scheduled
func (uc *UseCase) notifyProvider(ctx context.Context, reservation *domain.ScheduleReservation, job *jobClient.Job) {
	notification := notifyservice.Notification{
		TargetUserID: reservation.ProviderID,
		Type:         notifyservice.TypeJobScheduled,
		Title:        "Работа запланирована",
		Message: fmt.Sprintf("«%s» запланирована на %s",
			job.Title, reservation.ScheduledStartTime.Format("02.01.2006 15:04")),
		Data: map[string]string{
			"reservationId": fmt.Sprintf("%d", reservation.ID),
			"jobId":         fmt.Sprintf("%d", reservation.JobID),
		},
		Priority: notifyservice.PriorityNormal,
	}

	if err := uc.notifyClient.Send(ctx, notification); err != nil {
		uc.logger.Error("AutoBlockTime: failed to send job_scheduled notification for reservation id=%d: %v",
			reservation.ID, err)
	}
}
