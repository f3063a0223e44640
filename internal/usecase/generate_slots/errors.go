package generate_slots

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном диапазоне дат (конец раньше начала)
	ErrInvalidRange = errors.New("generate_slots: invalid date range")

	// ErrRangeTooWide возвращается, когда диапазон превышает горизонт генерации
	ErrRangeTooWide = errors.New("generate_slots: date range exceeds generation horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
