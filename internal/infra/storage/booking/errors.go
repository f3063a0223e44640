package booking

import "errors"

// Ошибки репозитория бронирований
var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateReference бронирование с таким reference уже существует
	ErrDuplicateReference = errors.New("booking.repository: duplicate reference")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
