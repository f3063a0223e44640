package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	generateSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate string `json:"startDate"` // "2025-10-01"
	EndDate   string `json:"endDate"`   // "2025-10-31"
}

// ConflictResponse пропущенная дата в отчете генерации
type ConflictResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	SlotsCreated int                `json:"slotsCreated"`
	SlotsUpdated int                `json:"slotsUpdated"`
	SlotsDeleted int                `json:"slotsDeleted"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest() (*generateSlots.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	out := &GenerateSlotsResponse{
		SlotsCreated: resp.SlotsCreated,
		SlotsUpdated: resp.SlotsUpdated,
		SlotsDeleted: resp.SlotsDeleted,
		Conflicts:    make([]ConflictResponse, 0, len(resp.Conflicts)),
	}
	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			Date:   c.Date.Format(domain.DateFormat),
			Reason: c.Reason,
		})
	}
	return out
}
