package notifharbor

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifharbor client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifharbor client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис уведомлений недоступен: операция продолжается без уведомления
	ErrServiceDegraded = errors.New("notifharbor unavailable: graceful degradation applied")
)
