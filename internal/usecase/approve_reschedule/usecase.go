package approve_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
)

// UseCase use case одобрения запроса на перенос бронирования
type UseCase struct {
	rescheduleRepo   RescheduleRepository
	scheduleRepo     ScheduleRepository
	availabilityRepo AvailabilityRepository
	notifyClient     NotifyServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rescheduleRepo RescheduleRepository,
	scheduleRepo ScheduleRepository,
	availabilityRepo AvailabilityRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		rescheduleRepo:   rescheduleRepo,
		scheduleRepo:     scheduleRepo,
		availabilityRepo: availabilityRepo,
		notifyClient:     notifyClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case одобрения переноса.
//
// Три записи — запрос, бронирование и связанный блок — выполняются в одной
// сериализуемой транзакции: либо применяются все, либо ни одна не видна.
// Из pending разрешён ровно один переход; повторное одобрение получает
// ErrNotPending за счёт guard'а по статусу в самом UPDATE.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveReschedule: request=%d, approvedBy=%d", req.RequestID, req.ApprovedBy)

	if req.RequestID <= 0 || req.ApprovedBy <= 0 {
		return nil, fmt.Errorf("%w: requestID and approvedBy must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		request     *domain.RescheduleRequest
		reservation *domain.ScheduleReservation
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Загружаем запрос с блокировкой строки
		loaded, err := uc.rescheduleRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
				uc.logger.Warn("ApproveReschedule: request id=%d not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("ApproveReschedule: failed to get request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}
		request = loaded

		// 2. Guard по статусу: из pending разрешён ровно один переход
		if !request.IsPending() {
			uc.logger.Warn("ApproveReschedule: request id=%d is not pending, status=%s",
				request.ID, request.Status)
			return ErrNotPending
		}

		// 3. Одобрять может только контрагент запроса
		if !request.IsCounterparty(req.ApprovedBy) {
			uc.logger.Warn("ApproveReschedule: user=%d is not the counterparty of request id=%d",
				req.ApprovedBy, request.ID)
			return ErrAccessDenied
		}

		// 4. Переводим запрос в approved (повторный guard в самом UPDATE)
		if err := uc.rescheduleRepo.Approve(txCtx, request.ID, req.ApprovedBy, now); err != nil {
			if errors.Is(err, rescheduleRepo.ErrNotPending) {
				return ErrNotPending
			}
			uc.logger.Error("ApproveReschedule: failed to approve request id=%d: %v", request.ID, err)
			return fmt.Errorf("%w: failed to approve request: %v", ErrInternal, err)
		}

		// 5. Переносим целевое бронирование на запрошенный интервал
		target, err := uc.scheduleRepo.GetByID(txCtx, request.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrReservationNotFound) {
				uc.logger.Warn("ApproveReschedule: reservation id=%d not found", request.ScheduleID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ApproveReschedule: failed to get reservation id=%d: %v", request.ScheduleID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// Запрос мог остаться pending после того, как бронирование было
		// завершено или отменено: терминальное состояние не покидается
		if !target.CanBeRescheduled() {
			uc.logger.Warn("ApproveReschedule: reservation id=%d in status %s cannot be rescheduled",
				target.ID, target.Status)
			return ErrInvalidTransition
		}

		if err := uc.scheduleRepo.UpdateTimes(txCtx, target.ID, request.RequestedStartTime, request.RequestedEndTime); err != nil {
			uc.logger.Error("ApproveReschedule: failed to update reservation id=%d: %v", target.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		// 6. Связанный блок занятости сдвигается на тот же интервал
		if target.HasLinkedBlock() {
			if err := uc.availabilityRepo.ShiftInterval(txCtx, *target.AvailabilityBlockID, request.RequestedStartTime, request.RequestedEndTime); err != nil {
				uc.logger.Error("ApproveReschedule: failed to shift block id=%d: %v",
					*target.AvailabilityBlockID, err)
				return fmt.Errorf("%w: failed to shift linked block: %v", ErrInternal, err)
			}
		}

		// Отражаем изменения в возвращаемых моделях
		request.Status = domain.RescheduleApproved
		request.ApprovedBy = &req.ApprovedBy
		request.ApprovedAt = &now

		target.ScheduledStartTime = request.RequestedStartTime
		target.ScheduledEndTime = request.RequestedEndTime
		target.Status = domain.ReservationRescheduled
		reservation = target

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApproveReschedule: request id=%d approved, reservation id=%d moved to %s - %s",
		request.ID, reservation.ID, reservation.ScheduledStartTime, reservation.ScheduledEndTime)

	// 7. Уведомляем инициатора запроса — после коммита, best-effort
	uc.notifyRequester(ctx, request)

	return &Response{Request: request, Reservation: reservation}, nil
}

// notifyRequester отправляет инициатору уведомление об одобрении переноса
func (uc *UseCase) notifyRequester(ctx context.Context, request *domain.RescheduleRequest) {
	notification := notifyservice.Notification{
		TargetUserID: request.RequestedBy,
		Type:         notifyservice.TypeRescheduleResult,
		Title:        "Перенос одобрен",
		Message: fmt.Sprintf("Бронирование перенесено на %s",
			request.RequestedStartTime.Format("02.01.2006 15:04")),
		Data: map[string]string{
			"requestId":  fmt.Sprintf("%d", request.ID),
			"scheduleId": fmt.Sprintf("%d", request.ScheduleID),
			"result":     "approved",
		},
		Priority: notifyservice.PriorityHigh,
	}

	if err := uc.notifyClient.Send(ctx, notification); err != nil {
		uc.logger.Error("ApproveReschedule: failed to send notification for request id=%d: %v",
			request.ID, err)
	}
}
