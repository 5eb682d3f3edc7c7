package auto_block_time

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.JobID <= 0 {
		return fmt.Errorf("%w: jobID must be positive", ErrInvalidInput)
	}

	if req.ApplicationID != nil && *req.ApplicationID <= 0 {
		return fmt.Errorf("%w: applicationID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	// Инвариант интервала: start < end
	if !req.StartTime.Before(req.EndTime) {
		return ErrInvalidInterval
	}

	return nil
}
