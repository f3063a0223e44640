package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модели

// UpsertTemplateRequest запрос на сохранение записи недельного шаблона
type UpsertTemplateRequest struct {
	DayOfWeek      int     `json:"dayOfWeek"`
	IsWorkingDay   bool    `json:"isWorkingDay"`
	MaxSlotsPerDay int     `json:"maxSlotsPerDay"`
	StartTime      *string `json:"startTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
}

// UpsertOverrideRequest запрос на сохранение дневного исключения
type UpsertOverrideRequest struct {
	IsWorkingDay   bool    `json:"isWorkingDay"`
	MaxSlotsPerDay int     `json:"maxSlotsPerDay"`
	StartTime      *string `json:"startTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
	Reason         *string `json:"reason,omitempty"`
}

// Response модели

// TemplateEntryResponse запись недельного шаблона
type TemplateEntryResponse struct {
	DayOfWeek      int     `json:"dayOfWeek"`
	IsWorkingDay   bool    `json:"isWorkingDay"`
	MaxSlotsPerDay int     `json:"maxSlotsPerDay"`
	StartTime      *string `json:"startTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
}

// TemplateResponse полный недельный шаблон
type TemplateResponse struct {
	Entries []TemplateEntryResponse `json:"entries"`
}

// OverrideResponse дневное исключение
type OverrideResponse struct {
	Date           string  `json:"date"`
	IsWorkingDay   bool    `json:"isWorkingDay"`
	MaxSlotsPerDay int     `json:"maxSlotsPerDay"`
	StartTime      *string `json:"startTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
	Reason         *string `json:"reason,omitempty"`
}

// OverrideListResponse список исключений
type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
}

// SlotResponse слот с производным статусом доступности
type SlotResponse struct {
	ID                int64  `json:"id"`
	Date              string `json:"date"`
	SlotNumber        int    `json:"slotNumber"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	AvailableCapacity int    `json:"availableCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
	Status            string `json:"status"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Конвертеры domain -> response

// FromDomainTemplateEntry конвертирует запись шаблона в response
func FromDomainTemplateEntry(entry *domain.WeeklyTemplateEntry) TemplateEntryResponse {
	resp := TemplateEntryResponse{
		DayOfWeek:      entry.DayOfWeek,
		IsWorkingDay:   entry.IsWorkingDay,
		MaxSlotsPerDay: entry.MaxSlotsPerDay,
	}
	if !entry.StartTime.IsZero() {
		s := entry.StartTime.String()
		resp.StartTime = &s
	}
	if !entry.EndTime.IsZero() {
		s := entry.EndTime.String()
		resp.EndTime = &s
	}
	return resp
}

// FromDomainTemplate конвертирует список записей шаблона в response
func FromDomainTemplate(entries []*domain.WeeklyTemplateEntry) *TemplateResponse {
	resp := &TemplateResponse{Entries: make([]TemplateEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, FromDomainTemplateEntry(entry))
	}
	return resp
}

// FromDomainOverride конвертирует исключение в response
func FromDomainOverride(override *domain.DailyOverride) OverrideResponse {
	resp := OverrideResponse{
		Date:           override.Date.Format(domain.DateFormat),
		IsWorkingDay:   override.IsWorkingDay,
		MaxSlotsPerDay: override.MaxSlotsPerDay,
		Reason:         override.Reason,
	}
	if override.StartTime != nil {
		s := override.StartTime.String()
		resp.StartTime = &s
	}
	if override.EndTime != nil {
		s := override.EndTime.String()
		resp.EndTime = &s
	}
	return resp
}

// FromDomainOverrideList конвертирует список исключений в response
func FromDomainOverrideList(overrides []*domain.DailyOverride) *OverrideListResponse {
	resp := &OverrideListResponse{Overrides: make([]OverrideResponse, 0, len(overrides))}
	for _, override := range overrides {
		resp.Overrides = append(resp.Overrides, FromDomainOverride(override))
	}
	return resp
}

// FromDomainSlot конвертирует слот в response
func FromDomainSlot(slot *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:                slot.ID,
		Date:              slot.Date.Format(domain.DateFormat),
		SlotNumber:        slot.SlotNumber,
		StartTime:         slot.StartTime.String(),
		EndTime:           slot.EndTime.String(),
		AvailableCapacity: slot.AvailableCapacity(),
		TotalCapacity:     slot.MaxBookings,
		Status:            string(slot.Availability()),
	}
}

// FromDomainSlotList конвертирует список слотов в response
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(slot))
	}
	return resp
}

// Конвертеры request -> domain

// ToDomainTemplateEntry конвертирует запрос в доменную запись шаблона
func (r *UpsertTemplateRequest) ToDomainTemplateEntry() (*domain.WeeklyTemplateEntry, error) {
	entry := &domain.WeeklyTemplateEntry{
		DayOfWeek:      r.DayOfWeek,
		IsWorkingDay:   r.IsWorkingDay,
		MaxSlotsPerDay: r.MaxSlotsPerDay,
	}

	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		entry.StartTime = ts
	}
	if r.EndTime != nil {
		ts, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		entry.EndTime = ts
	}

	return entry, nil
}

// ToDomainOverride конвертирует запрос в доменное исключение
func (r *UpsertOverrideRequest) ToDomainOverride(date time.Time) (*domain.DailyOverride, error) {
	override := &domain.DailyOverride{
		Date:           date,
		IsWorkingDay:   r.IsWorkingDay,
		MaxSlotsPerDay: r.MaxSlotsPerDay,
		Reason:         r.Reason,
	}

	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		override.StartTime = &ts
	}
	if r.EndTime != nil {
		ts, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		override.EndTime = &ts
	}

	return override, nil
}
