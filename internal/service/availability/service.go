package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
)

// Service сервис для работы с блоками доступности и календарным окном
type Service struct {
	availabilityRepo AvailabilityRepository
	scheduleRepo     ScheduleRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		scheduleRepo:     scheduleRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// UpdateBlock обновляет блок доступности
// Только владелец может изменять свой блок. Для available блоков пересечение
// с другими available блоками перепроверяется (исключая сам блок) в одной
// сериализуемой транзакции с записью.
func (s *Service) UpdateBlock(ctx context.Context, blockID int64, req *models.UpdateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("UpdateBlock: updating block id=%d by user=%d", blockID, req.ActorID)

	if !req.StartTime.Before(req.EndTime) {
		s.logger.Warn("UpdateBlock: invalid interval for block id=%d", blockID)
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	var updated *domain.AvailabilityBlock

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		block, err := s.availabilityRepo.GetByID(txCtx, blockID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
				s.logger.Warn("UpdateBlock: block id=%d not found", blockID)
				return ErrBlockNotFound
			}
			s.logger.Error("UpdateBlock: repository error for block id=%d: %v", blockID, err)
			return fmt.Errorf("%w: UpdateBlock - repository error: %v", ErrInternal, err)
		}

		// Проверяем права доступа: блок принадлежит одному провайдеру
		if !block.IsOwnedBy(req.ActorID) {
			s.logger.Warn("UpdateBlock: access denied for user=%d to block id=%d", req.ActorID, blockID)
			return ErrAccessDenied
		}

		// Перепроверяем пересечение для available блока, исключая сам блок
		if req.Type == domain.BlockTypeAvailable {
			overlapping, err := s.availabilityRepo.FindOverlapping(txCtx, block.ProviderID, req.StartTime, req.EndTime, &blockID)
			if err != nil {
				s.logger.Error("UpdateBlock: failed to check overlaps for block id=%d: %v", blockID, err)
				return fmt.Errorf("%w: UpdateBlock - failed to check overlaps: %v", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				s.logger.Warn("UpdateBlock: conflict with %d existing block(s) for block id=%d",
					len(overlapping), blockID)
				return ErrConflict
			}
		}

		block.Title = req.Title
		block.StartTime = req.StartTime
		block.EndTime = req.EndTime
		block.IsRecurring = req.IsRecurring
		block.Recurrence = req.Recurrence
		block.Type = req.Type
		block.Notes = req.Notes

		if err := s.availabilityRepo.Update(txCtx, block); err != nil {
			s.logger.Error("UpdateBlock: failed to update block id=%d: %v", blockID, err)
			return fmt.Errorf("%w: UpdateBlock - failed to update: %v", ErrInternal, err)
		}

		updated = block
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateBlock: successfully updated block id=%d", blockID)
	return models.FromDomainBlock(updated), nil
}

// DeleteBlock удаляет блок доступности
// Каскадных эффектов нет: связанные бронирования остаются без блока
func (s *Service) DeleteBlock(ctx context.Context, blockID int64, actorID int64) error {
	s.logger.Info("DeleteBlock: deleting block id=%d by user=%d", blockID, actorID)

	block, err := s.availabilityRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	if !block.IsOwnedBy(actorID) {
		s.logger.Warn("DeleteBlock: access denied for user=%d to block id=%d", actorID, blockID)
		return ErrAccessDenied
	}

	if err := s.availabilityRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: failed to delete block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - failed to delete: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: successfully deleted block id=%d", blockID)
	return nil
}

// GetCalendarView составляет календарное окно провайдера из блоков доступности
// и бронирований. Read-only операция: ничего не мутирует.
//
// Recurring блоки разворачиваются в конкретные вхождения внутри окна —
// потребитель календаря всегда видит простые интервалы.
func (s *Service) GetCalendarView(ctx context.Context, req *models.GetCalendarViewRequest) (*models.CalendarViewResponse, error) {
	s.logger.Info("GetCalendarView: provider=%d, view=%s, start=%s, end=%s",
		req.ProviderID, req.ViewType, req.Start, req.End)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if !req.Start.Before(req.End) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}
	if !req.ViewType.IsValid() {
		return nil, fmt.Errorf("%w: unknown view type %q", ErrInvalidInput, req.ViewType)
	}

	blocks, err := s.availabilityRepo.FindInRange(ctx, req.ProviderID, req.Start, req.End)
	if err != nil {
		s.logger.Error("GetCalendarView: failed to fetch blocks for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetCalendarView - failed to fetch blocks: %v", ErrInternal, err)
	}

	reservations, err := s.scheduleRepo.FindInRange(ctx, domain.ScheduleRangeFilter{
		ProviderID: req.ProviderID,
		Start:      req.Start,
		End:        req.End,
	})
	if err != nil {
		s.logger.Error("GetCalendarView: failed to fetch reservations for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetCalendarView - failed to fetch reservations: %v", ErrInternal, err)
	}

	view := &models.CalendarViewResponse{
		ProviderID:   req.ProviderID,
		ViewType:     req.ViewType,
		Start:        req.Start,
		End:          req.End,
		Blocks:       make([]models.CalendarBlockEntry, 0, len(blocks)),
		Reservations: make([]models.CalendarReservationEntry, 0, len(reservations)),
	}

	for _, block := range blocks {
		for _, occurrence := range block.OccurrencesWithin(req.Start, req.End) {
			view.Blocks = append(view.Blocks, models.CalendarBlockEntry{
				BlockID:     block.ID,
				Title:       block.Title,
				Type:        block.Type,
				StartTime:   occurrence.Start,
				EndTime:     occurrence.End,
				IsRecurring: block.IsRecurring,
				Notes:       block.Notes,
			})
		}
	}

	for _, reservation := range reservations {
		view.Reservations = append(view.Reservations, models.CalendarReservationEntry{
			ReservationID: reservation.ID,
			JobID:         reservation.JobID,
			StartTime:     reservation.ScheduledStartTime,
			EndTime:       reservation.ScheduledEndTime,
			Status:        reservation.Status,
			Location:      reservation.Location,
		})
	}

	s.logger.Info("GetCalendarView: composed view for provider=%d with %d block entries and %d reservations",
		req.ProviderID, len(view.Blocks), len(view.Reservations))

	return view, nil
}
