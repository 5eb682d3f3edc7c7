package create_reschedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reschedules/models"
)

// CreateRescheduleRequest HTTP request model
type CreateRescheduleRequest struct {
	ScheduleID         int64     `json:"scheduleId"`
	RequestedFor       int64     `json:"requestedFor"`
	RequestedStartTime time.Time `json:"requestedStartTime"`
	RequestedEndTime   time.Time `json:"requestedEndTime"`
	Reason             string    `json:"reason"`
}

// ToServiceInput конвертирует HTTP запрос в модель сервиса
// requestedBy берется из аутентификационного контекста
func (r *CreateRescheduleRequest) ToServiceInput(requestedBy int64) *models.CreateRequestInput {
	return &models.CreateRequestInput{
		ScheduleID:         r.ScheduleID,
		RequestedBy:        requestedBy,
		RequestedFor:       r.RequestedFor,
		RequestedStartTime: r.RequestedStartTime,
		RequestedEndTime:   r.RequestedEndTime,
		Reason:             r.Reason,
	}
}
