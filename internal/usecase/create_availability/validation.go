package create_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Все проверки выполняются до какой-либо записи
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	// Инвариант интервала: start < end
	if !req.StartTime.Before(req.EndTime) {
		return ErrInvalidInterval
	}

	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	switch req.Type {
	case domain.BlockTypeAvailable, domain.BlockTypeUnavailable, domain.BlockTypeBusy:
	default:
		return fmt.Errorf("%w: unknown block type %q", ErrInvalidInput, req.Type)
	}

	return validateRecurrence(req)
}

// validateRecurrence валидирует recurrence паттерн, если блок повторяющийся
func validateRecurrence(req *Request) error {
	if !req.IsRecurring {
		if req.Recurrence != nil {
			return fmt.Errorf("%w: recurrence pattern set for a single block", ErrInvalidRecurrence)
		}
		return nil
	}

	if req.Recurrence == nil {
		return fmt.Errorf("%w: recurring block requires a pattern", ErrInvalidRecurrence)
	}

	switch req.Recurrence.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly:
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRecurrence, req.Recurrence.Frequency)
	}

	if req.Recurrence.Interval < 1 {
		return fmt.Errorf("%w: interval must be >= 1", ErrInvalidRecurrence)
	}

	// Условие завершения: либо until, либо count, но не оба сразу
	if req.Recurrence.Until != nil && req.Recurrence.Count != nil {
		return fmt.Errorf("%w: until and count are mutually exclusive", ErrInvalidRecurrence)
	}

	if req.Recurrence.Count != nil && *req.Recurrence.Count < 1 {
		return fmt.Errorf("%w: count must be >= 1", ErrInvalidRecurrence)
	}

	if req.Recurrence.Until != nil && req.Recurrence.Until.Before(req.StartTime) {
		return fmt.Errorf("%w: until is before the first occurrence", ErrInvalidRecurrence)
	}

	return nil
}
