package auto_block_time

import "errors"

var (
	// ErrJobNotFound возвращается, когда работа не найдена в JobService
	ErrJobNotFound = errors.New("auto_block_time: job not found")

	// ErrInvalidInterval возвращается при интервале с end <= start
	ErrInvalidInterval = errors.New("auto_block_time: invalid interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auto_block_time: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("auto_block_time: internal error")
)
