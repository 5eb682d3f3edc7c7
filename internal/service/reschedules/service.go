package reschedules

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedules/models"
)

// Service сервис переговоров о переносе бронирований
// Одобрение запроса вынесено в отдельный usecase: оно мутирует сразу три
// сущности в одной транзакции. Остальные шаги переговоров живут здесь.
type Service struct {
	rescheduleRepo RescheduleRepository
	scheduleRepo   ScheduleRepository
	notifyClient   NotifyServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса переносов
func NewService(
	rescheduleRepo RescheduleRepository,
	scheduleRepo ScheduleRepository,
	notifyClient NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		rescheduleRepo: rescheduleRepo,
		scheduleRepo:   scheduleRepo,
		notifyClient:   notifyClient,
		logger:         logger,
	}
}

// CreateRequest создает запрос на перенос целевого бронирования
// Интервал бронирования снимается в снапшот на момент создания запроса
func (s *Service) CreateRequest(ctx context.Context, input *models.CreateRequestInput) (*models.RequestResponse, error) {
	s.logger.Info("CreateRequest: new reschedule request for reservation id=%d by user=%d",
		input.ScheduleID, input.RequestedBy)

	if err := s.validateCreateInput(input); err != nil {
		s.logger.Warn("CreateRequest: validation failed: %v", err)
		return nil, err
	}

	reservation, err := s.scheduleRepo.GetByID(ctx, input.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrReservationNotFound) {
			s.logger.Warn("CreateRequest: reservation id=%d not found", input.ScheduleID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("CreateRequest: failed to load reservation id=%d: %v", input.ScheduleID, err)
		return nil, fmt.Errorf("%w: CreateRequest - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeRescheduled() {
		s.logger.Warn("CreateRequest: reservation id=%d in status %s cannot be rescheduled",
			reservation.ID, reservation.Status)
		return nil, fmt.Errorf("%w: reservation in status %s cannot be rescheduled",
			ErrInvalidInput, reservation.Status)
	}

	request := &domain.RescheduleRequest{
		ScheduleID:         reservation.ID,
		JobID:              reservation.JobID,
		RequestedBy:        input.RequestedBy,
		RequestedFor:       input.RequestedFor,
		OriginalStartTime:  reservation.ScheduledStartTime,
		OriginalEndTime:    reservation.ScheduledEndTime,
		RequestedStartTime: input.RequestedStartTime,
		RequestedEndTime:   input.RequestedEndTime,
		Reason:             input.Reason,
		Status:             domain.ReschedulePending,
	}

	created, err := s.rescheduleRepo.Create(ctx, request)
	if err != nil {
		s.logger.Error("CreateRequest: failed to create request for reservation id=%d: %v",
			input.ScheduleID, err)
		return nil, fmt.Errorf("%w: CreateRequest - failed to create: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRequest: created request id=%d for reservation id=%d", created.ID, created.ScheduleID)

	s.notifyCounterparty(ctx, created)

	return models.FromDomainRequest(created), nil
}

// Reject отклоняет ожидающий запрос на перенос
// Бронирование при отклонении не изменяется
func (s *Service) Reject(ctx context.Context, requestID int64, actorID int64, reason string) (*models.RequestResponse, error) {
	s.logger.Info("Reject: rejecting request id=%d by user=%d", requestID, actorID)

	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	request, err := s.loadRequest(ctx, "Reject", requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsPending() {
		s.logger.Warn("Reject: request id=%d already in status %s", requestID, request.Status)
		return nil, ErrNotPending
	}

	// Отклонить может только контрагент, чьё одобрение требовалось
	if !request.IsCounterparty(actorID) {
		s.logger.Warn("Reject: access denied for user=%d to request id=%d", actorID, requestID)
		return nil, ErrAccessDenied
	}

	if err := s.rescheduleRepo.Reject(ctx, requestID, reason); err != nil {
		if errors.Is(err, rescheduleRepo.ErrNotPending) {
			s.logger.Warn("Reject: request id=%d resolved concurrently", requestID)
			return nil, ErrNotPending
		}
		s.logger.Error("Reject: failed to reject request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: Reject - failed to update: %v", ErrInternal, err)
	}

	request.Status = domain.RescheduleRejected
	request.RejectionReason = &reason

	s.logger.Info("Reject: request id=%d rejected", requestID)

	s.notifyDecision(ctx, request, request.RequestedBy, "Перенос отклонён",
		fmt.Sprintf("Запрос на перенос работ по заказу #%d отклонён", request.JobID))

	return models.FromDomainRequest(request), nil
}

// Withdraw отзывает собственный ожидающий запрос на перенос
func (s *Service) Withdraw(ctx context.Context, requestID int64, actorID int64) (*models.RequestResponse, error) {
	s.logger.Info("Withdraw: withdrawing request id=%d by user=%d", requestID, actorID)

	request, err := s.loadRequest(ctx, "Withdraw", requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsPending() {
		s.logger.Warn("Withdraw: request id=%d already in status %s", requestID, request.Status)
		return nil, ErrNotPending
	}

	// Отозвать запрос может только его автор
	if !request.IsRequester(actorID) {
		s.logger.Warn("Withdraw: access denied for user=%d to request id=%d", actorID, requestID)
		return nil, ErrAccessDenied
	}

	if err := s.rescheduleRepo.Cancel(ctx, requestID); err != nil {
		if errors.Is(err, rescheduleRepo.ErrNotPending) {
			s.logger.Warn("Withdraw: request id=%d resolved concurrently", requestID)
			return nil, ErrNotPending
		}
		s.logger.Error("Withdraw: failed to cancel request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: Withdraw - failed to update: %v", ErrInternal, err)
	}

	request.Status = domain.RescheduleCancelled

	s.logger.Info("Withdraw: request id=%d withdrawn", requestID)

	s.notifyDecision(ctx, request, request.RequestedFor, "Запрос на перенос отозван",
		fmt.Sprintf("Запрос на перенос работ по заказу #%d отозван автором", request.JobID))

	return models.FromDomainRequest(request), nil
}

// GetPendingFor возвращает запросы, ожидающие решения указанного пользователя
func (s *Service) GetPendingFor(ctx context.Context, userID int64) (*models.PendingRequestsResponse, error) {
	s.logger.Info("GetPendingFor: user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	requests, err := s.rescheduleRepo.FindPendingFor(ctx, userID)
	if err != nil {
		s.logger.Error("GetPendingFor: failed to fetch requests for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetPendingFor - repository error: %v", ErrInternal, err)
	}

	resp := &models.PendingRequestsResponse{
		Requests: make([]models.RequestResponse, 0, len(requests)),
		Total:    len(requests),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, *models.FromDomainRequest(r))
	}

	return resp, nil
}

func (s *Service) validateCreateInput(input *models.CreateRequestInput) error {
	if input.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}
	if input.RequestedBy <= 0 || input.RequestedFor <= 0 {
		return fmt.Errorf("%w: requestedBy and requestedFor must be positive", ErrInvalidInput)
	}
	if input.RequestedBy == input.RequestedFor {
		return fmt.Errorf("%w: requestedFor must differ from requestedBy", ErrInvalidInput)
	}
	if !input.RequestedStartTime.Before(input.RequestedEndTime) {
		return fmt.Errorf("%w: requested end must be after requested start", ErrInvalidInput)
	}
	if len(input.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}

// notifyCounterparty уведомляет сторону, чьё одобрение требуется
// Ошибки отправки логируются и не влияют на результат операции
func (s *Service) notifyCounterparty(ctx context.Context, request *domain.RescheduleRequest) {
	notification := notifyservice.Notification{
		TargetUserID: request.RequestedFor,
		Type:         notifyservice.TypeRescheduleRequest,
		Title:        "Запрос на перенос работ",
		Message: fmt.Sprintf("Предложено новое время работ по заказу #%d: %s",
			request.JobID, request.RequestedStartTime.Format("02.01.2006 15:04")),
		Data: map[string]string{
			"requestId":     strconv.FormatInt(request.ID, 10),
			"reservationId": strconv.FormatInt(request.ScheduleID, 10),
			"jobId":         strconv.FormatInt(request.JobID, 10),
		},
		Priority: notifyservice.PriorityHigh,
		Channels: []notifyservice.Channel{notifyservice.ChannelPush},
	}

	if err := s.notifyClient.Send(ctx, notification); err != nil {
		s.logger.Warn("notifyCounterparty: failed to notify user=%d about request id=%d: %v",
			request.RequestedFor, request.ID, err)
	}
}

// notifyDecision уведомляет сторону о принятом по запросу решении
func (s *Service) notifyDecision(ctx context.Context, request *domain.RescheduleRequest, targetUserID int64, title, message string) {
	notification := notifyservice.Notification{
		TargetUserID: targetUserID,
		Type:         notifyservice.TypeRescheduleResult,
		Title:        title,
		Message:      message,
		Data: map[string]string{
			"requestId":     strconv.FormatInt(request.ID, 10),
			"reservationId": strconv.FormatInt(request.ScheduleID, 10),
			"status":        string(request.Status),
		},
		Priority: notifyservice.PriorityHigh,
		Channels: []notifyservice.Channel{notifyservice.ChannelPush},
	}

	if err := s.notifyClient.Send(ctx, notification); err != nil {
		s.logger.Warn("notifyDecision: failed to notify user=%d about request id=%d: %v",
			targetUserID, request.ID, err)
	}
}

// loadRequest загружает запрос на перенос по идентификатору
func (s *Service) loadRequest(ctx context.Context, op string, requestID int64) (*domain.RescheduleRequest, error) {
	request, err := s.rescheduleRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, requestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, requestID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return request, nil
}
