package create_availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request входные данные для создания блока доступности
type Request struct {
	ProviderID  int64
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	IsRecurring bool
	Recurrence  *domain.RecurrencePattern
	Type        domain.BlockType
	Notes       *string
}

// Response созданный блок доступности
type Response struct {
	Block *domain.AvailabilityBlock
}
