package create_availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_availability"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	Title       string                    `json:"title"`
	StartTime   time.Time                 `json:"startTime"`
	EndTime     time.Time                 `json:"endTime"`
	IsRecurring bool                      `json:"isRecurring"`
	Recurrence  *domain.RecurrencePattern `json:"recurrence,omitempty"`
	Type        string                    `json:"type"`
	Notes       *string                   `json:"notes,omitempty"`
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID          int64                     `json:"id"`
	ProviderID  int64                     `json:"providerId"`
	Title       string                    `json:"title"`
	StartTime   time.Time                 `json:"startTime"`
	EndTime     time.Time                 `json:"endTime"`
	IsRecurring bool                      `json:"isRecurring"`
	Recurrence  *domain.RecurrencePattern `json:"recurrence,omitempty"`
	Type        string                    `json:"type"`
	Notes       *string                   `json:"notes,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// providerID берется из аутентификационного контекста
func (r *CreateAvailabilityRequest) ToUseCaseRequest(providerID int64) *createAvailability.Request {
	return &createAvailability.Request{
		ProviderID:  providerID,
		Title:       r.Title,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsRecurring: r.IsRecurring,
		Recurrence:  r.Recurrence,
		Type:        domain.BlockType(r.Type),
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAvailability.Response) *BlockResponse {
	b := resp.Block
	return &BlockResponse{
		ID:          b.ID,
		ProviderID:  b.ProviderID,
		Title:       b.Title,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		IsRecurring: b.IsRecurring,
		Recurrence:  b.Recurrence,
		Type:        string(b.Type),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
