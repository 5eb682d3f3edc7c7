package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CreateRequestInput запрос на создание предложения о переносе
type CreateRequestInput struct {
	ScheduleID         int64
	RequestedBy        int64
	RequestedFor       int64
	RequestedStartTime time.Time
	RequestedEndTime   time.Time
	Reason             string
}

// Response модели

// RequestResponse ответ с данными запроса на перенос
type RequestResponse struct {
	ID                 int64                   `json:"id"`
	ScheduleID         int64                   `json:"scheduleId"`
	JobID              int64                   `json:"jobId"`
	RequestedBy        int64                   `json:"requestedBy"`
	RequestedFor       int64                   `json:"requestedFor"`
	OriginalStartTime  time.Time               `json:"originalStartTime"`
	OriginalEndTime    time.Time               `json:"originalEndTime"`
	RequestedStartTime time.Time               `json:"requestedStartTime"`
	RequestedEndTime   time.Time               `json:"requestedEndTime"`
	Reason             string                  `json:"reason"`
	Status             domain.RescheduleStatus `json:"status"`
	ApprovedBy         *int64                  `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time              `json:"approvedAt,omitempty"`
	RejectionReason    *string                 `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// PendingRequestsResponse список ожидающих решения запросов пользователя
type PendingRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.RescheduleRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	return &RequestResponse{
		ID:                 r.ID,
		ScheduleID:         r.ScheduleID,
		JobID:              r.JobID,
		RequestedBy:        r.RequestedBy,
		RequestedFor:       r.RequestedFor,
		OriginalStartTime:  r.OriginalStartTime,
		OriginalEndTime:    r.OriginalEndTime,
		RequestedStartTime: r.RequestedStartTime,
		RequestedEndTime:   r.RequestedEndTime,
		Reason:             r.Reason,
		Status:             r.Status,
		ApprovedBy:         r.ApprovedBy,
		ApprovedAt:         r.ApprovedAt,
		RejectionReason:    r.RejectionReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
