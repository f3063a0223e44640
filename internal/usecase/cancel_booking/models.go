package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID  int64   // ID бронирования
	CustomerID int64   // ID клиента-инициатора, 0 пропускает проверку владельца
	Reason     *string // Причина отмены (опционально)
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID          int64      // ID бронирования
	Status      string     // Итоговый статус
	CancelledAt *time.Time // Время отмены
}
