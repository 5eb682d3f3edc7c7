package schedules

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedules/models"
)

const defaultUpcomingLimit = 20

// Service сервис для управления жизненным циклом бронирований
// и автоматическими сканами напоминаний/опозданий
type Service struct {
	scheduleRepo ScheduleRepository
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	scheduleRepo ScheduleRepository,
	notifyClient NotifyServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		notifyClient: notifyClient,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// StartReservation переводит бронирование в статус in_progress
// и фиксирует фактическое время начала работ
func (s *Service) StartReservation(ctx context.Context, reservationID int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("StartReservation: starting reservation id=%d by user=%d", reservationID, actorID)

	reservation, err := s.loadOwned(ctx, "StartReservation", reservationID, actorID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanStart() {
		s.logger.Warn("StartReservation: reservation id=%d in status %s cannot be started",
			reservationID, reservation.Status)
		return nil, fmt.Errorf("%w: cannot start reservation in status %s", ErrInvalidTransition, reservation.Status)
	}

	now := s.timeProvider.Now()
	if err := s.scheduleRepo.Start(ctx, reservationID, now); err != nil {
		s.logger.Error("StartReservation: failed to start reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: StartReservation - failed to update: %v", ErrInternal, err)
	}

	reservation.Status = domain.ReservationInProgress
	reservation.ActualStartTime = &now

	s.logger.Info("StartReservation: reservation id=%d is now in progress", reservationID)
	return models.FromDomainReservation(reservation), nil
}

// CompleteReservation переводит бронирование в статус completed
// и фиксирует фактическое время завершения работ
func (s *Service) CompleteReservation(ctx context.Context, reservationID int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("CompleteReservation: completing reservation id=%d by user=%d", reservationID, actorID)

	reservation, err := s.loadOwned(ctx, "CompleteReservation", reservationID, actorID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanComplete() {
		s.logger.Warn("CompleteReservation: reservation id=%d in status %s cannot be completed",
			reservationID, reservation.Status)
		return nil, fmt.Errorf("%w: cannot complete reservation in status %s", ErrInvalidTransition, reservation.Status)
	}

	now := s.timeProvider.Now()
	if err := s.scheduleRepo.Complete(ctx, reservationID, now); err != nil {
		s.logger.Error("CompleteReservation: failed to complete reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: CompleteReservation - failed to update: %v", ErrInternal, err)
	}

	reservation.Status = domain.ReservationCompleted
	reservation.ActualEndTime = &now

	s.logger.Info("CompleteReservation: reservation id=%d completed", reservationID)
	return models.FromDomainReservation(reservation), nil
}

// CancelReservation переводит бронирование в статус cancelled
// Отмена допустима из любого нетерминального статуса
func (s *Service) CancelReservation(ctx context.Context, reservationID int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("CancelReservation: cancelling reservation id=%d by user=%d", reservationID, actorID)

	reservation, err := s.loadOwned(ctx, "CancelReservation", reservationID, actorID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("CancelReservation: reservation id=%d in status %s cannot be cancelled",
			reservationID, reservation.Status)
		return nil, fmt.Errorf("%w: cannot cancel reservation in status %s", ErrInvalidTransition, reservation.Status)
	}

	if err := s.scheduleRepo.UpdateStatus(ctx, reservationID, domain.ReservationCancelled); err != nil {
		s.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: CancelReservation - failed to update: %v", ErrInternal, err)
	}

	reservation.Status = domain.ReservationCancelled

	s.logger.Info("CancelReservation: reservation id=%d cancelled", reservationID)
	return models.FromDomainReservation(reservation), nil
}

// GetUpcoming возвращает предстоящие scheduled бронирования провайдера
// отсортированные по времени начала
func (s *Service) GetUpcoming(ctx context.Context, providerID int64, limit uint64) (*models.UpcomingReservationsResponse, error) {
	s.logger.Info("GetUpcoming: provider=%d, limit=%d", providerID, limit)

	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultUpcomingLimit
	}

	reservations, err := s.scheduleRepo.FindUpcoming(ctx, providerID, s.timeProvider.Now(), limit)
	if err != nil {
		s.logger.Error("GetUpcoming: failed to fetch reservations for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	resp := &models.UpcomingReservationsResponse{
		Reservations: make([]models.ReservationResponse, 0, len(reservations)),
		Total:        len(reservations),
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *models.FromDomainReservation(r))
	}

	return resp, nil
}

// SendJobStartReminders сканирует бронирования, начинающиеся в ближайшие
// minutesBefore минут, и рассылает напоминания провайдерам.
//
// Флаг reminder_sent выставляется только после попытки отправки, поэтому
// повторные запуски скана (в том числе после рестарта) не дублируют
// уведомления. Ошибка по одной записи не прерывает обработку остальных.
func (s *Service) SendJobStartReminders(ctx context.Context, minutesBefore int) (*models.ScanResult, error) {
	now := s.timeProvider.Now()

	reservations, err := s.scheduleRepo.FindNeedingReminder(ctx, now, minutesBefore)
	if err != nil {
		s.logger.Error("SendJobStartReminders: failed to scan reservations: %v", err)
		return nil, fmt.Errorf("%w: SendJobStartReminders - repository error: %v", ErrInternal, err)
	}

	if len(reservations) == 0 {
		return &models.ScanResult{}, nil
	}

	s.logger.Info("SendJobStartReminders: found %d reservation(s) needing a reminder", len(reservations))

	result := &models.ScanResult{}
	for _, reservation := range reservations {
		notification := notifyservice.Notification{
			TargetUserID: reservation.ProviderID,
			Type:         notifyservice.TypeJobStartReminder,
			Title:        "Скоро начало работ",
			Message: fmt.Sprintf("Работа по заказу #%d начинается в %s",
				reservation.JobID, reservation.ScheduledStartTime.Format("15:04")),
			Data: map[string]string{
				"reservationId": strconv.FormatInt(reservation.ID, 10),
				"jobId":         strconv.FormatInt(reservation.JobID, 10),
			},
			Priority: notifyservice.PriorityHigh,
			Channels: []notifyservice.Channel{notifyservice.ChannelPush, notifyservice.ChannelSMS},
		}

		if err := s.notifyClient.Send(ctx, notification); err != nil {
			s.logger.Warn("SendJobStartReminders: failed to notify provider=%d for reservation id=%d: %v",
				reservation.ProviderID, reservation.ID, err)
		}

		if err := s.scheduleRepo.MarkReminderSent(ctx, reservation.ID, now); err != nil {
			s.logger.Error("SendJobStartReminders: failed to mark reminder sent for reservation id=%d: %v",
				reservation.ID, err)
			result.Failed++
			continue
		}

		result.Processed++
	}

	s.logger.Info("SendJobStartReminders: processed=%d, failed=%d", result.Processed, result.Failed)
	return result, nil
}

// SendLatenessAlerts сканирует бронирования, которые должны были начаться,
// но так и не были переведены в in_progress, и рассылает срочные уведомления.
//
// Флаг lateness_alert_sent гарантирует не более одного уведомления на запись.
func (s *Service) SendLatenessAlerts(ctx context.Context) (*models.ScanResult, error) {
	now := s.timeProvider.Now()

	reservations, err := s.scheduleRepo.FindLate(ctx, now)
	if err != nil {
		s.logger.Error("SendLatenessAlerts: failed to scan reservations: %v", err)
		return nil, fmt.Errorf("%w: SendLatenessAlerts - repository error: %v", ErrInternal, err)
	}

	if len(reservations) == 0 {
		return &models.ScanResult{}, nil
	}

	s.logger.Info("SendLatenessAlerts: found %d late reservation(s)", len(reservations))

	result := &models.ScanResult{}
	for _, reservation := range reservations {
		notification := notifyservice.Notification{
			TargetUserID: reservation.ProviderID,
			Type:         notifyservice.TypeLatenessAlert,
			Title:        "Работа не начата вовремя",
			Message: fmt.Sprintf("Работа по заказу #%d должна была начаться в %s",
				reservation.JobID, reservation.ScheduledStartTime.Format("15:04")),
			Data: map[string]string{
				"reservationId": strconv.FormatInt(reservation.ID, 10),
				"jobId":         strconv.FormatInt(reservation.JobID, 10),
			},
			Priority: notifyservice.PriorityUrgent,
			Channels: []notifyservice.Channel{notifyservice.ChannelPush, notifyservice.ChannelSMS},
		}

		if err := s.notifyClient.Send(ctx, notification); err != nil {
			s.logger.Warn("SendLatenessAlerts: failed to notify provider=%d for reservation id=%d: %v",
				reservation.ProviderID, reservation.ID, err)
		}

		if err := s.scheduleRepo.MarkLatenessAlertSent(ctx, reservation.ID); err != nil {
			s.logger.Error("SendLatenessAlerts: failed to mark alert sent for reservation id=%d: %v",
				reservation.ID, err)
			result.Failed++
			continue
		}

		result.Processed++
	}

	s.logger.Info("SendLatenessAlerts: processed=%d, failed=%d", result.Processed, result.Failed)
	return result, nil
}

// loadOwned загружает бронирование и проверяет, что actorID — его владелец
func (s *Service) loadOwned(ctx context.Context, op string, reservationID, actorID int64) (*domain.ScheduleReservation, error) {
	reservation, err := s.scheduleRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, reservationID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !reservation.IsOwnedBy(actorID) {
		s.logger.Warn("%s: access denied for user=%d to reservation id=%d", op, actorID, reservationID)
		return nil, ErrAccessDenied
	}

	return reservation, nil
}
