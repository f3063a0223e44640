package reschedule

import "errors"

// Ошибки репозитория заявок на перенос
var (
	// ErrRequestNotFound заявка не найдена
	ErrRequestNotFound = errors.New("reschedule.repository: request not found")

	// ErrPendingExists по бронированию уже есть открытая заявка
	ErrPendingExists = errors.New("reschedule.repository: pending request already exists")

	// ErrAlreadyResolved заявка уже получила финальный статус
	ErrAlreadyResolved = errors.New("reschedule.repository: request already resolved")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("reschedule.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("reschedule.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("reschedule.repository: failed to scan row")
)
