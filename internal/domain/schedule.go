package domain

import "time"

// ReservationStatus represents the status of a schedule reservation
type ReservationStatus string

const (
	ReservationScheduled   ReservationStatus = "scheduled"
	ReservationInProgress  ReservationStatus = "in_progress"
	ReservationCompleted   ReservationStatus = "completed"
	ReservationCancelled   ReservationStatus = "cancelled"
	ReservationRescheduled ReservationStatus = "rescheduled"
)

// ScheduleReservation represents a confirmed booking of provider time against one job
type ScheduleReservation struct {
	ID            int64
	ProviderID    int64
	JobID         int64
	ApplicationID *int64

	ScheduledStartTime time.Time
	ScheduledEndTime   time.Time
	ActualStartTime    *time.Time
	ActualEndTime      *time.Time

	Status ReservationStatus

	// Связанный блок занятости в календаре (если при создании не было конфликта)
	AvailabilityBlockID *int64
	// Связанная запись учёта времени (заполняется внешним сервисом)
	TimeEntryID *int64

	Location *string

	ReminderSent      bool
	ReminderSentAt    *time.Time
	LatenessAlertSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the reservation belongs to the given provider
func (r *ScheduleReservation) IsOwnedBy(providerID int64) bool {
	return r.ProviderID == providerID
}

// Interval returns the scheduled interval of the reservation
func (r *ScheduleReservation) Interval() Interval {
	return Interval{Start: r.ScheduledStartTime, End: r.ScheduledEndTime}
}

// IsTerminal returns true if no further transitions are allowed
func (r *ScheduleReservation) IsTerminal() bool {
	return statusIn(r.Status, TerminalReservationStatuses)
}

// CanStart returns true if the reservation can transition to in_progress.
// A rescheduled reservation stays active and can still be started.
func (r *ScheduleReservation) CanStart() bool {
	return r.Status == ReservationScheduled || r.Status == ReservationRescheduled
}

// CanComplete returns true if the reservation can transition to completed
func (r *ScheduleReservation) CanComplete() bool {
	return r.Status == ReservationInProgress
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *ScheduleReservation) CanBeCancelled() bool {
	return statusIn(r.Status, ActiveReservationStatuses)
}

func statusIn(status ReservationStatus, set []ReservationStatus) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

// CanBeRescheduled returns true if a reschedule may target the reservation
func (r *ScheduleReservation) CanBeRescheduled() bool {
	return r.Status == ReservationScheduled || r.Status == ReservationRescheduled
}

// HasLinkedBlock returns true if a busy availability block is linked to the reservation
func (r *ScheduleReservation) HasLinkedBlock() bool {
	return r.AvailabilityBlockID != nil
}

// ReminderWindow возвращает границы окна напоминаний: напоминание положено
// бронированию, начало которого лежит в [now, now+minutesBefore]
func ReminderWindow(now time.Time, minutesBefore int) (time.Time, time.Time) {
	return now, now.Add(time.Duration(minutesBefore) * time.Minute)
}

// LatenessWindow возвращает границы окна опоздания: начало прошло более
// LatenessAlertMinMinutes, но менее LatenessAlertMaxMinutes назад
func LatenessWindow(now time.Time) (time.Time, time.Time) {
	return now.Add(-LatenessAlertMaxMinutes * time.Minute),
		now.Add(-LatenessAlertMinMinutes * time.Minute)
}

// NeedsReminderAt reports whether a start reminder is due for the reservation
// at the given moment. Both window bounds are inclusive.
func (r *ScheduleReservation) NeedsReminderAt(now time.Time, minutesBefore int) bool {
	if r.Status != ReservationScheduled || r.ReminderSent {
		return false
	}
	from, to := ReminderWindow(now, minutesBefore)
	return !r.ScheduledStartTime.Before(from) && !r.ScheduledStartTime.After(to)
}

// IsLateAt reports whether the reservation counts as late at the given moment.
// The lateness window is open on both sides: a start exactly 5 minutes past is
// not yet late, a start 60 minutes past has aged out of the window.
func (r *ScheduleReservation) IsLateAt(now time.Time) bool {
	if r.Status != ReservationScheduled || r.LatenessAlertSent {
		return false
	}
	from, to := LatenessWindow(now)
	return r.ScheduledStartTime.After(from) && r.ScheduledStartTime.Before(to)
}

// ScheduleRangeFilter фильтр для выборки бронирований в окне календаря
// Окно трактуется как полное включение: scheduledStart >= Start И scheduledEnd <= End
type ScheduleRangeFilter struct {
	ProviderID int64
	Start      time.Time
	End        time.Time
	Status     *ReservationStatus // опционально
}
