package peer

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("repository: failed to build SQL query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("repository: failed to execute SQL query")

	// ErrScanRow возвращается при ошибке сканирования строки результата
	ErrScanRow = errors.New("repository: failed to scan row")

	// ErrInvalidKind возвращается для строки с неизвестным типом адресата
	ErrInvalidKind = errors.New("repository: invalid peer kind")
)
