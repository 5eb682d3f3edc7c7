package approve_reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на перенос не найден
	ErrRequestNotFound = errors.New("approve_reschedule: request not found")

	// ErrReservationNotFound возвращается, когда целевое бронирование не найдено
	ErrReservationNotFound = errors.New("approve_reschedule: reservation not found")

	// ErrNotPending возвращается при попытке одобрить запрос, уже переведённый
	// в терминальный статус (в том числе при повторном одобрении)
	ErrNotPending = errors.New("approve_reschedule: request is not pending")

	// ErrInvalidTransition возвращается, когда целевое бронирование уже покинуло
	// активное состояние: перенос завершённой или отменённой работы невозможен
	ErrInvalidTransition = errors.New("approve_reschedule: reservation cannot be rescheduled")

	// ErrAccessDenied возвращается, когда одобряющий не является контрагентом запроса
	ErrAccessDenied = errors.New("approve_reschedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_reschedule: internal error")
)
