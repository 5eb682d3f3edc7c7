package approve_reschedule

import (
	"time"

	approveReschedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/approve_reschedule"
)

// ApproveRescheduleResponse HTTP response model: решённый запрос
// и бронирование с уже обновлённым расписанием
type ApproveRescheduleResponse struct {
	Request     RequestPayload     `json:"request"`
	Reservation ReservationPayload `json:"reservation"`
}

type RequestPayload struct {
	ID                 int64      `json:"id"`
	ScheduleID         int64      `json:"scheduleId"`
	Status             string     `json:"status"`
	RequestedStartTime time.Time  `json:"requestedStartTime"`
	RequestedEndTime   time.Time  `json:"requestedEndTime"`
	ApprovedBy         *int64     `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
}

type ReservationPayload struct {
	ID                 int64     `json:"id"`
	ProviderID         int64     `json:"providerId"`
	JobID              int64     `json:"jobId"`
	ScheduledStartTime time.Time `json:"scheduledStartTime"`
	ScheduledEndTime   time.Time `json:"scheduledEndTime"`
	Status             string    `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveReschedule.Response) *ApproveRescheduleResponse {
	req, res := resp.Request, resp.Reservation
	return &ApproveRescheduleResponse{
		Request: RequestPayload{
			ID:                 req.ID,
			ScheduleID:         req.ScheduleID,
			Status:             string(req.Status),
			RequestedStartTime: req.RequestedStartTime,
			RequestedEndTime:   req.RequestedEndTime,
			ApprovedBy:         req.ApprovedBy,
			ApprovedAt:         req.ApprovedAt,
		},
		Reservation: ReservationPayload{
			ID:                 res.ID,
			ProviderID:         res.ProviderID,
			JobID:              res.JobID,
			ScheduledStartTime: res.ScheduledStartTime,
			ScheduledEndTime:   res.ScheduledEndTime,
			Status:             string(res.Status),
		},
	}
}
