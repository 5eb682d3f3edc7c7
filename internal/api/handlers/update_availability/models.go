package update_availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
)

// UpdateBlockRequest HTTP request model
type UpdateBlockRequest struct {
	Title       string                    `json:"title"`
	StartTime   time.Time                 `json:"startTime"`
	EndTime     time.Time                 `json:"endTime"`
	IsRecurring bool                      `json:"isRecurring"`
	Recurrence  *domain.RecurrencePattern `json:"recurrence,omitempty"`
	Type        string                    `json:"type"`
	Notes       *string                   `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBlockRequest) ToServiceRequest(actorID int64) *models.UpdateBlockRequest {
	return &models.UpdateBlockRequest{
		ActorID:     actorID,
		Title:       r.Title,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsRecurring: r.IsRecurring,
		Recurrence:  r.Recurrence,
		Type:        domain.BlockType(r.Type),
		Notes:       r.Notes,
	}
}
