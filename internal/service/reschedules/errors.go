package reschedules

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на перенос не найден
	ErrRequestNotFound = errors.New("reschedules.service: request not found")

	// ErrReservationNotFound возвращается, когда целевое бронирование не найдено
	ErrReservationNotFound = errors.New("reschedules.service: reservation not found")

	// ErrNotPending возвращается при попытке решить уже решённый запрос
	ErrNotPending = errors.New("reschedules.service: request is not pending")

	// ErrAccessDenied возвращается, когда действие выполняет не та сторона
	ErrAccessDenied = errors.New("reschedules.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedules.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("reschedules.service: internal error")
)
