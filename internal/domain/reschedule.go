package domain

import "time"

// RescheduleStatus represents the status of a reschedule request
type RescheduleStatus string

const (
	ReschedulePending   RescheduleStatus = "pending"
	RescheduleApproved  RescheduleStatus = "approved"
	RescheduleRejected  RescheduleStatus = "rejected"
	RescheduleCancelled RescheduleStatus = "cancelled"
)

// RescheduleRequest is a negotiation artifact proposing a new interval for a
// reservation. It transitions exactly once out of pending into a terminal state.
type RescheduleRequest struct {
	ID         int64
	ScheduleID int64
	JobID      int64

	RequestedBy  int64
	RequestedFor int64 // контрагент, чьё одобрение требуется

	// Снимок интервала бронирования на момент создания запроса —
	// единственный след исходного времени после одобрения
	OriginalStartTime time.Time
	OriginalEndTime   time.Time

	RequestedStartTime time.Time
	RequestedEndTime   time.Time

	Reason string
	Status RescheduleStatus

	ApprovedBy      *int64
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the request still awaits a decision
func (r *RescheduleRequest) IsPending() bool {
	return r.Status == ReschedulePending
}

// IsTerminal returns true if the request reached a terminal state
func (r *RescheduleRequest) IsTerminal() bool {
	return r.Status == RescheduleApproved ||
		r.Status == RescheduleRejected ||
		r.Status == RescheduleCancelled
}

// IsCounterparty returns true if the actor is the party whose approval is required
func (r *RescheduleRequest) IsCounterparty(actorID int64) bool {
	return r.RequestedFor == actorID
}

// IsRequester returns true if the actor created the request
func (r *RescheduleRequest) IsRequester(actorID int64) bool {
	return r.RequestedBy == actorID
}

// RequestedInterval returns the proposed interval
func (r *RescheduleRequest) RequestedInterval() Interval {
	return Interval{Start: r.RequestedStartTime, End: r.RequestedEndTime}
}
