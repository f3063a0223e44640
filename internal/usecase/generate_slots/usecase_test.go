package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	overrideRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/override"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTemplateStore struct {
	entries map[int]*domain.WeeklyTemplateEntry
}

func (s *fakeTemplateStore) GetByDay(_ context.Context, dayOfWeek int) (*domain.WeeklyTemplateEntry, error) {
	entry, ok := s.entries[dayOfWeek]
	if !ok {
		return nil, templateRepo.ErrEntryNotFound
	}
	return entry, nil
}

type fakeOverrideStore struct {
	overrides map[string]*domain.DailyOverride
}

func (s *fakeOverrideStore) GetByDate(_ context.Context, date time.Time) (*domain.DailyOverride, error) {
	override, ok := s.overrides[date.Format(domain.DateFormat)]
	if !ok {
		return nil, overrideRepo.ErrOverrideNotFound
	}
	return override, nil
}

type slotKey struct {
	date       string
	slotNumber int
}

// fakeSlotStore повторяет семантику UpsertGenerated и DeleteEmptyByDate
type fakeSlotStore struct {
	nextID int64
	slots  map[slotKey]*domain.Slot
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: make(map[slotKey]*domain.Slot)}
}

func (s *fakeSlotStore) GetByDateForUpdate(_ context.Context, date time.Time) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for key, slot := range s.slots {
		if key.date == date.Format(domain.DateFormat) {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (s *fakeSlotStore) UpsertGenerated(_ context.Context, slot *domain.Slot) (bool, error) {
	key := slotKey{date: slot.Date.Format(domain.DateFormat), slotNumber: slot.SlotNumber}

	if existing, ok := s.slots[key]; ok {
		if existing.CurrentBookings > slot.MaxBookings {
			return false, slotRepo.ErrCapacityConflict
		}
		existing.StartTime = slot.StartTime
		existing.EndTime = slot.EndTime
		existing.MaxBookings = slot.MaxBookings
		return false, nil
	}

	s.nextID++
	created := *slot
	created.ID = s.nextID
	s.slots[key] = &created
	return true, nil
}

func (s *fakeSlotStore) DeleteEmptyByDate(_ context.Context, date time.Time, keepBelow int) (int64, error) {
	var removed int64
	for key, slot := range s.slots {
		if key.date != date.Format(domain.DateFormat) {
			continue
		}
		if keepBelow > 0 && slot.SlotNumber <= keepBelow {
			continue
		}
		if slot.CurrentBookings == 0 {
			delete(s.slots, key)
			removed++
		}
	}
	return removed, nil
}

func (s *fakeSlotStore) at(date time.Time, slotNumber int) *domain.Slot {
	return s.slots[slotKey{date: date.Format(domain.DateFormat), slotNumber: slotNumber}]
}

func workingEntry(day, slots int, start, end string) *domain.WeeklyTemplateEntry {
	return &domain.WeeklyTemplateEntry{
		DayOfWeek:      day,
		IsWorkingDay:   true,
		MaxSlotsPerDay: slots,
		StartTime:      types.TimeString(start),
		EndTime:        types.TimeString(end),
	}
}

func allWeekTemplate(slots int, start, end string) *fakeTemplateStore {
	store := &fakeTemplateStore{entries: map[int]*domain.WeeklyTemplateEntry{}}
	for day := 0; day < 7; day++ {
		store.entries[day] = workingEntry(day, slots, start, end)
	}
	return store
}

func noOverrides() *fakeOverrideStore {
	return &fakeOverrideStore{overrides: map[string]*domain.DailyOverride{}}
}

func newUseCase(templates *fakeTemplateStore, overrides *fakeOverrideStore, slots *fakeSlotStore) *UseCase {
	return NewUseCase(templates, overrides, slots, nil, fakeTxManager{}, 90, 2, nopLogger{})
}

// 2026-09-07 is a Monday
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestExecute_GeneratesSlotsFromTemplate(t *testing.T) {
	slots := newFakeSlotStore()
	uc := newUseCase(allWeekTemplate(4, "10:00", "18:00"), noOverrides(), slots)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.SlotsCreated)
	assert.Equal(t, 0, resp.SlotsUpdated)
	assert.Empty(t, resp.Conflicts)

	first := slots.at(monday, 1)
	require.NotNil(t, first)
	assert.Equal(t, "10:00", first.StartTime.String())
	assert.Equal(t, "12:00", first.EndTime.String())
	assert.Equal(t, 2, first.MaxBookings)

	last := slots.at(monday, 4)
	require.NotNil(t, last)
	assert.Equal(t, "16:00", last.StartTime.String())
	assert.Equal(t, "18:00", last.EndTime.String())
}

func TestExecute_Idempotent(t *testing.T) {
	slots := newFakeSlotStore()
	uc := newUseCase(allWeekTemplate(3, "09:00", "18:00"), noOverrides(), slots)

	first, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Equal(t, 3, first.SlotsCreated)

	// Занимаем место и повторяем генерацию: счетчик не сбрасывается
	slots.at(monday, 2).CurrentBookings = 1

	second, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Equal(t, 0, second.SlotsCreated)
	assert.Equal(t, 3, second.SlotsUpdated)
	assert.Equal(t, 1, slots.at(monday, 2).CurrentBookings)
}

func TestExecute_OverrideBeatsTemplate(t *testing.T) {
	slots := newFakeSlotStore()
	overrides := noOverrides()
	overrides.overrides[monday.Format(domain.DateFormat)] = &domain.DailyOverride{
		Date:           monday,
		IsWorkingDay:   true,
		MaxSlotsPerDay: 2,
		StartTime:      ptr.Ptr(types.TimeString("12:00")),
		EndTime:        ptr.Ptr(types.TimeString("16:00")),
	}
	uc := newUseCase(allWeekTemplate(8, "09:00", "21:00"), overrides, slots)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.SlotsCreated)
	assert.Equal(t, "12:00", slots.at(monday, 1).StartTime.String())
	assert.Equal(t, "14:00", slots.at(monday, 1).EndTime.String())
	assert.Equal(t, "16:00", slots.at(monday, 2).EndTime.String())
}

// Нерабочий день: пустые слоты удаляются, занятые дают конфликт по дате
func TestExecute_NonWorkingDay(t *testing.T) {
	t.Run("clears empty slots", func(t *testing.T) {
		slots := newFakeSlotStore()
		uc := newUseCase(allWeekTemplate(2, "10:00", "14:00"), noOverrides(), slots)

		_, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
		require.NoError(t, err)

		overrides := noOverrides()
		overrides.overrides[monday.Format(domain.DateFormat)] = &domain.DailyOverride{
			Date:         monday,
			IsWorkingDay: false,
		}
		uc = newUseCase(allWeekTemplate(2, "10:00", "14:00"), overrides, slots)

		resp, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.SlotsDeleted)
		assert.Empty(t, resp.Conflicts)
		assert.Nil(t, slots.at(monday, 1))
	})

	t.Run("booked slot reports conflict", func(t *testing.T) {
		slots := newFakeSlotStore()
		uc := newUseCase(allWeekTemplate(2, "10:00", "14:00"), noOverrides(), slots)

		_, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
		require.NoError(t, err)
		slots.at(monday, 1).CurrentBookings = 1

		overrides := noOverrides()
		overrides.overrides[monday.Format(domain.DateFormat)] = &domain.DailyOverride{
			Date:         monday,
			IsWorkingDay: false,
		}
		uc = newUseCase(allWeekTemplate(2, "10:00", "14:00"), overrides, slots)

		resp, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
		require.NoError(t, err)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, monday, resp.Conflicts[0].Date)

		// Занятый слот пережил нерабочий день
		require.NotNil(t, slots.at(monday, 1))
	})
}

// Рабочее исключение без часов на день без записи в шаблоне - конфликт
// одной даты, остальные даты диапазона продолжают обрабатываться
func TestExecute_WorkingOverrideWithoutHours(t *testing.T) {
	slots := newFakeSlotStore()

	tuesday := monday.AddDate(0, 0, 1)
	templates := &fakeTemplateStore{entries: map[int]*domain.WeeklyTemplateEntry{
		int(tuesday.Weekday()): workingEntry(int(tuesday.Weekday()), 2, "10:00", "14:00"),
	}}
	overrides := noOverrides()
	overrides.overrides[monday.Format(domain.DateFormat)] = &domain.DailyOverride{
		Date:           monday,
		IsWorkingDay:   true,
		MaxSlotsPerDay: 4,
	}

	uc := newUseCase(templates, overrides, slots)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: tuesday})
	require.NoError(t, err)

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, monday, resp.Conflicts[0].Date)
	assert.Equal(t, "working day has no usable hours", resp.Conflicts[0].Reason)

	// Вторник сгенерирован несмотря на конфликт понедельника
	assert.Equal(t, 2, resp.SlotsCreated)
	require.NotNil(t, slots.at(tuesday, 1))
	assert.Nil(t, slots.at(monday, 1))
}

func TestExecute_ConflictDoesNotStopOtherDates(t *testing.T) {
	slots := newFakeSlotStore()
	uc := newUseCase(allWeekTemplate(2, "10:00", "14:00"), noOverrides(), slots)

	tuesday := monday.AddDate(0, 0, 1)
	_, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: tuesday})
	require.NoError(t, err)
	slots.at(monday, 1).CurrentBookings = 1

	overrides := noOverrides()
	overrides.overrides[monday.Format(domain.DateFormat)] = &domain.DailyOverride{
		Date:         monday,
		IsWorkingDay: false,
	}
	uc = newUseCase(allWeekTemplate(2, "10:00", "14:00"), overrides, slots)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: tuesday})
	require.NoError(t, err)

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, 2, resp.SlotsUpdated)
}

func TestExecute_NoTemplateMeansNonWorking(t *testing.T) {
	slots := newFakeSlotStore()
	uc := newUseCase(&fakeTemplateStore{entries: map[int]*domain.WeeklyTemplateEntry{}}, noOverrides(), slots)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SlotsCreated)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_RangeValidation(t *testing.T) {
	uc := newUseCase(allWeekTemplate(2, "10:00", "14:00"), noOverrides(), newFakeSlotStore())

	_, err := uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{StartDate: monday, EndDate: monday.AddDate(0, 0, 120)})
	assert.ErrorIs(t, err, ErrRangeTooWide)

	_, err = uc.Execute(context.Background(), &Request{EndDate: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSplitWorkingHours(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		slotCount int
		want      []slotBounds
		wantErr   bool
	}{
		{
			name: "even split", start: "10:00", end: "14:00", slotCount: 4,
			want: []slotBounds{
				{start: "10:00", end: "11:00"},
				{start: "11:00", end: "12:00"},
				{start: "12:00", end: "13:00"},
				{start: "13:00", end: "14:00"},
			},
		},
		{
			name: "remainder goes to last slot", start: "09:00", end: "18:30", slotCount: 4,
			want: []slotBounds{
				{start: "09:00", end: "11:22"},
				{start: "11:22", end: "13:44"},
				{start: "13:44", end: "16:06"},
				{start: "16:06", end: "18:30"},
			},
		},
		{
			name: "single slot", start: "08:00", end: "20:00", slotCount: 1,
			want: []slotBounds{{start: "08:00", end: "20:00"}},
		},
		{
			name: "hours shorter than slot count", start: "10:00", end: "10:05", slotCount: 10,
			wantErr: true,
		},
		{
			name: "end before start", start: "14:00", end: "10:00", slotCount: 2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitWorkingHours(types.TimeString(tt.start), types.TimeString(tt.end), tt.slotCount)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
