package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID    int64   // ID клиента
	SlotID        int64   // ID слота
	CustomerName  string  // Имя клиента
	CustomerPhone *string // Телефон (опционально)
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64  // ID созданного бронирования
	Reference  string // Код бронирования для клиента
	CustomerID int64  // ID клиента
	SlotID     int64  // ID слота
	Status     string // Статус бронирования

	// Данные слота для ответа клиенту
	SlotDate      time.Time        // Дата слота
	SlotStartTime types.TimeString // Время начала
	SlotEndTime   types.TimeString // Время конца

	CreatedAt time.Time // Время создания
}
