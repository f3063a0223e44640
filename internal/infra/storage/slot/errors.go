package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotUnavailable возвращается, когда слот заблокирован или заполнен
	// Это штатный исход гонки за последнее место, а не внутренняя ошибка
	ErrSlotUnavailable = errors.New("slot.repository: slot unavailable")

	// ErrNotReserved возвращается при попытке освободить слот с нулевым счетчиком
	// Вызывающий код трактует это как no-op и логирует предупреждение
	ErrNotReserved = errors.New("slot.repository: slot has no reservations to release")

	// ErrSlotHasBookings возвращается при попытке удалить слот с активными бронированиями
	ErrSlotHasBookings = errors.New("slot.repository: slot has active bookings")

	// ErrCapacityConflict возвращается, когда upsert уменьшил бы max_bookings
	// ниже текущего current_bookings
	ErrCapacityConflict = errors.New("slot.repository: capacity below current bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
