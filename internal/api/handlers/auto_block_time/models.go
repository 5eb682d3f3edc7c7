package auto_block_time

import (
	"time"

	autoBlockTime "github.com/m04kA/SMC-ScheduleService/internal/usecase/auto_block_time"
)

// AutoBlockTimeRequest HTTP request model
// Вызывается движком заказов при принятии работы провайдером
type AutoBlockTimeRequest struct {
	ProviderID    int64     `json:"providerId"`
	JobID         int64     `json:"jobId"`
	ApplicationID *int64    `json:"applicationId,omitempty"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Location      *string   `json:"location,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                  int64     `json:"id"`
	ProviderID          int64     `json:"providerId"`
	JobID               int64     `json:"jobId"`
	ApplicationID       *int64    `json:"applicationId,omitempty"`
	ScheduledStartTime  time.Time `json:"scheduledStartTime"`
	ScheduledEndTime    time.Time `json:"scheduledEndTime"`
	Status              string    `json:"status"`
	AvailabilityBlockID *int64    `json:"availabilityBlockId,omitempty"`
	Location            *string   `json:"location,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AutoBlockTimeRequest) ToUseCaseRequest() *autoBlockTime.Request {
	return &autoBlockTime.Request{
		ProviderID:    r.ProviderID,
		JobID:         r.JobID,
		ApplicationID: r.ApplicationID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Location:      r.Location,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *autoBlockTime.Response) *ReservationResponse {
	res := resp.Reservation
	return &ReservationResponse{
		ID:                  res.ID,
		ProviderID:          res.ProviderID,
		JobID:               res.JobID,
		ApplicationID:       res.ApplicationID,
		ScheduledStartTime:  res.ScheduledStartTime,
		ScheduledEndTime:    res.ScheduledEndTime,
		Status:              string(res.Status),
		AvailabilityBlockID: res.AvailabilityBlockID,
		Location:            res.Location,
		CreatedAt:           res.CreatedAt,
	}
}
