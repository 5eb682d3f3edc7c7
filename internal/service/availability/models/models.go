package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// UpdateBlockRequest запрос на обновление блока доступности
type UpdateBlockRequest struct {
	ActorID     int64
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	IsRecurring bool
	Recurrence  *domain.RecurrencePattern
	Type        domain.BlockType
	Notes       *string
}

// GetCalendarViewRequest запрос на составление календарного окна
type GetCalendarViewRequest struct {
	ProviderID int64
	ViewType   domain.CalendarViewType
	Start      time.Time
	End        time.Time
}

// Response модели

// CalendarBlockEntry одно конкретное вхождение блока в календарном окне
// Recurring блоки разворачиваются: каждое вхождение — отдельная запись
type CalendarBlockEntry struct {
	BlockID     int64            `json:"blockId"`
	Title       string           `json:"title"`
	Type        domain.BlockType `json:"type"`
	StartTime   time.Time        `json:"startTime"`
	EndTime     time.Time        `json:"endTime"`
	IsRecurring bool             `json:"isRecurring"`
	Notes       *string          `json:"notes,omitempty"`
}

// CalendarReservationEntry бронирование в календарном окне
type CalendarReservationEntry struct {
	ReservationID int64                    `json:"reservationId"`
	JobID         int64                    `json:"jobId"`
	StartTime     time.Time                `json:"startTime"`
	EndTime       time.Time                `json:"endTime"`
	Status        domain.ReservationStatus `json:"status"`
	Location      *string                  `json:"location,omitempty"`
}

// CalendarViewResponse составленное календарное окно провайдера
// Read-only представление: составление ничего не мутирует
type CalendarViewResponse struct {
	ProviderID   int64                      `json:"providerId"`
	ViewType     domain.CalendarViewType    `json:"viewType"`
	Start        time.Time                  `json:"start"`
	End          time.Time                  `json:"end"`
	Blocks       []CalendarBlockEntry       `json:"blocks"`
	Reservations []CalendarReservationEntry `json:"reservations"`
}

// BlockResponse ответ с данными блока доступности
type BlockResponse struct {
	ID          int64                     `json:"id"`
	ProviderID  int64                     `json:"providerId"`
	Title       string                    `json:"title"`
	StartTime   time.Time                 `json:"startTime"`
	EndTime     time.Time                 `json:"endTime"`
	IsRecurring bool                      `json:"isRecurring"`
	Recurrence  *domain.RecurrencePattern `json:"recurrence,omitempty"`
	Type        domain.BlockType          `json:"type"`
	Notes       *string                   `json:"notes,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// Методы конвертации

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.AvailabilityBlock) *BlockResponse {
	if b == nil {
		return nil
	}

	return &BlockResponse{
		ID:          b.ID,
		ProviderID:  b.ProviderID,
		Title:       b.Title,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		IsRecurring: b.IsRecurring,
		Recurrence:  b.Recurrence,
		Type:        b.Type,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
