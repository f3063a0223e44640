package override

import "errors"

// Ошибки репозитория дневных исключений
var (
	// ErrOverrideNotFound исключение для даты не найдено
	ErrOverrideNotFound = errors.New("override.repository: override not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("override.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("override.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("override.repository: failed to scan row")
)
