package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                  int64                    `json:"id"`
	ProviderID          int64                    `json:"providerId"`
	JobID               int64                    `json:"jobId"`
	ApplicationID       *int64                   `json:"applicationId,omitempty"`
	ScheduledStartTime  time.Time                `json:"scheduledStartTime"`
	ScheduledEndTime    time.Time                `json:"scheduledEndTime"`
	ActualStartTime     *time.Time               `json:"actualStartTime,omitempty"`
	ActualEndTime       *time.Time               `json:"actualEndTime,omitempty"`
	Status              domain.ReservationStatus `json:"status"`
	AvailabilityBlockID *int64                   `json:"availabilityBlockId,omitempty"`
	Location            *string                  `json:"location,omitempty"`
	CreatedAt           time.Time                `json:"createdAt"`
	UpdatedAt           time.Time                `json:"updatedAt"`
}

// UpcomingReservationsResponse список предстоящих бронирований провайдера
type UpcomingReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// ScanResult итог одного прохода автоматического сканирования
type ScanResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.ScheduleReservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:                  r.ID,
		ProviderID:          r.ProviderID,
		JobID:               r.JobID,
		ApplicationID:       r.ApplicationID,
		ScheduledStartTime:  r.ScheduledStartTime,
		ScheduledEndTime:    r.ScheduledEndTime,
		ActualStartTime:     r.ActualStartTime,
		ActualEndTime:       r.ActualEndTime,
		Status:              r.Status,
		AvailabilityBlockID: r.AvailabilityBlockID,
		Location:            r.Location,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
