package template

import "errors"

// Ошибки репозитория недельного шаблона
var (
	// ErrEntryNotFound запись шаблона для дня недели не найдена
	ErrEntryNotFound = errors.New("template.repository: entry not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("template.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("template.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("template.repository: failed to scan row")
)
