package domain

// Параметры автоматизации по умолчанию
const (
	// DefaultReminderMinutesBefore за сколько минут до начала отправляется напоминание
	DefaultReminderMinutesBefore = 60

	// Окно опоздания: бронирование считается просроченным, если его начало
	// прошло более LatenessAlertMinMinutes, но менее LatenessAlertMaxMinutes назад
	LatenessAlertMinMinutes = 5
	LatenessAlertMaxMinutes = 60

	// DefaultScanIntervalMinutes период запуска фоновых сканов
	DefaultScanIntervalMinutes = 15
)

// Business validation constants
const (
	MaxTitleLength  = 255
	MaxNotesLength  = 500
	MaxReasonLength = 500
)

// TerminalReservationStatuses список терминальных статусов бронирования
var TerminalReservationStatuses = []ReservationStatus{
	ReservationCompleted,
	ReservationCancelled,
}

// ActiveReservationStatuses список статусов, в которых бронирование занимает время провайдера
var ActiveReservationStatuses = []ReservationStatus{
	ReservationScheduled,
	ReservationInProgress,
	ReservationRescheduled,
}
