package availability

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блок доступности не найден
	ErrBlockNotFound = errors.New("availability.repository: block not found")

	// ErrInvalidInterval возвращается при попытке записать интервал с end <= start
	ErrInvalidInterval = errors.New("availability.repository: invalid interval")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")

	// ErrEncodeRecurrence возвращается при ошибке сериализации recurrence паттерна
	ErrEncodeRecurrence = errors.New("availability.repository: failed to encode recurrence pattern")
)
