package reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на перенос не найден
	ErrRequestNotFound = errors.New("reschedule.repository: request not found")

	// ErrNotPending возвращается при попытке перевести в терминальный статус
	// запрос, который уже не находится в статусе pending
	ErrNotPending = errors.New("reschedule.repository: request is not pending")

	// ErrInvalidInterval возвращается при попытке записать интервал с end <= start
	ErrInvalidInterval = errors.New("reschedule.repository: invalid interval")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reschedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reschedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reschedule.repository: failed to scan row")
)
