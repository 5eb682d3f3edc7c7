package create_availability

import "errors"

var (
	// ErrConflict возвращается, когда интервал пересекается с существующим
	// блоком доступности провайдера
	ErrConflict = errors.New("create_availability: overlapping availability block")

	// ErrInvalidInterval возвращается при интервале с end <= start
	ErrInvalidInterval = errors.New("create_availability: invalid interval")

	// ErrInvalidRecurrence возвращается при некорректном recurrence паттерне
	ErrInvalidRecurrence = errors.New("create_availability: invalid recurrence pattern")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_availability: internal error")
)
