package schedules

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("schedules.service: reservation not found")

	// ErrAccessDenied возвращается при попытке управлять чужим бронированием
	ErrAccessDenied = errors.New("schedules.service: access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("schedules.service: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedules.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("schedules.service: internal error")
)
