package availability

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блок доступности не найден
	ErrBlockNotFound = errors.New("block not found")

	// ErrConflict возвращается, когда обновлённый интервал пересекается
	// с другим available блоком провайдера
	ErrConflict = errors.New("overlapping availability block")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на блок
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
