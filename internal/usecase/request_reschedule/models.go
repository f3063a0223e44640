package request_reschedule

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID       int64  // ID бронирования
	CustomerID      int64  // ID клиента-инициатора, 0 пропускает проверку владельца
	RequestedSlotID int64  // ID желаемого слота
	Reason          string // Причина переноса
}

// Response модель ответа с созданной заявкой
type Response struct {
	RequestID int64     // ID заявки
	BookingID int64     // ID бронирования
	Status    string    // Статус заявки (pending)
	ExpiresAt time.Time // Крайний срок ответа администратора
}
