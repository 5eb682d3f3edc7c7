package create_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UseCase use case для создания блока доступности
type UseCase struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case создания блока доступности.
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции,
// чтобы две конкурирующие попытки не нарушили инвариант непересечения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAvailability: provider=%d, type=%s, start=%s, end=%s, recurring=%t",
		req.ProviderID, req.Type, req.StartTime, req.EndTime, req.IsRecurring)

	// 1. Валидация входных данных — до любой записи
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}

	var result *domain.AvailabilityBlock

	// 2. Проверка конфликтов и запись в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Инвариант непересечения действует среди available блоков:
		// для busy/unavailable блоков пересечение конфликтом не считается
		if req.Type == domain.BlockTypeAvailable {
			overlapping, err := uc.availabilityRepo.FindOverlapping(txCtx, req.ProviderID, req.StartTime, req.EndTime, nil)
			if err != nil {
				uc.logger.Error("CreateAvailability: failed to check overlaps: %v", err)
				return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
			}

			if len(overlapping) > 0 {
				uc.logger.Warn("CreateAvailability: conflict with %d existing block(s) for provider=%d",
					len(overlapping), req.ProviderID)
				return ErrConflict
			}
		}

		// 2.2. Создаем блок
		block := &domain.AvailabilityBlock{
			ProviderID:  req.ProviderID,
			Title:       req.Title,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			IsRecurring: req.IsRecurring,
			Recurrence:  req.Recurrence,
			Type:        req.Type,
			Notes:       req.Notes,
		}

		created, err := uc.availabilityRepo.Create(txCtx, block)
		if err != nil {
			uc.logger.Error("CreateAvailability: failed to create block: %v", err)
			return fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAvailability: successfully created block id=%d for provider=%d",
		result.ID, result.ProviderID)

	return &Response{Block: result}, nil
}
