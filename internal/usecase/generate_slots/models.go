package generate_slots

import "time"

// Request модель запроса на генерацию слотов
type Request struct {
	StartDate time.Time // Первая дата диапазона включительно
	EndDate   time.Time // Последняя дата диапазона включительно
}

// Conflict описывает дату, пропущенную генератором
type Conflict struct {
	Date   time.Time // Дата с конфликтом
	Reason string    // Причина пропуска
}

// Response отчет о результате генерации
type Response struct {
	SlotsCreated int        // Создано новых слотов
	SlotsUpdated int        // Обновлено существующих слотов
	SlotsDeleted int        // Удалено слотов без бронирований
	Conflicts    []Conflict // Пропущенные даты
}
