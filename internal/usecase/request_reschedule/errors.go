package request_reschedule

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("request_reschedule: booking not found")

	// ErrBookingInactive возвращается, когда бронирование отменено или завершено
	ErrBookingInactive = errors.New("request_reschedule: booking is cancelled or completed")

	// ErrAlreadyPending возвращается, когда по бронированию уже есть открытая заявка
	ErrAlreadyPending = errors.New("request_reschedule: pending request already exists")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("request_reschedule: access denied")

	// ErrSlotNotFound возвращается, когда запрошенный слот не найден
	ErrSlotNotFound = errors.New("request_reschedule: requested slot not found")

	// ErrSlotUnavailable возвращается, когда запрошенный слот заполнен или заблокирован
	ErrSlotUnavailable = errors.New("request_reschedule: requested slot is not available")

	// ErrSameSlot возвращается, когда запрошен перенос в тот же слот
	ErrSameSlot = errors.New("request_reschedule: requested slot equals the current one")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_reschedule: internal error")
)
