package respond_reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("respond_reschedule: request not found")

	// ErrRequestResolved возвращается, когда заявка уже получила финальный статус
	ErrRequestResolved = errors.New("respond_reschedule: request is already resolved")

	// ErrRequestExpired возвращается, когда срок ответа на заявку истек
	ErrRequestExpired = errors.New("respond_reschedule: request has expired")

	// ErrSlotNoLongerAvailable возвращается при одобрении, когда желаемый слот
	// потерял вместимость; заявка остается открытой для другого решения
	ErrSlotNoLongerAvailable = errors.New("respond_reschedule: requested slot is no longer available")

	// ErrInvalidDecision возвращается при неизвестном решении администратора
	ErrInvalidDecision = errors.New("respond_reschedule: decision must be approve or decline")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("respond_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("respond_reschedule: internal error")
)
