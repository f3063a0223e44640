package respond_reschedule

import "time"

// Решения администратора по заявке
const (
	DecisionApprove = "approve"
	DecisionDecline = "decline"
)

// Request модель запроса на решение по заявке
type Request struct {
	RequestID int64   // ID заявки
	Decision  string  // approve или decline
	Notes     *string // Комментарий администратора (опционально)
}

// Response модель ответа с итоговым состоянием заявки
type Response struct {
	RequestID   int64      // ID заявки
	BookingID   int64      // ID бронирования
	Status      string     // Итоговый статус заявки
	RespondedAt *time.Time // Время решения
}
