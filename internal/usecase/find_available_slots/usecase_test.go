package find_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/internal/domain"
	procedureRepo "github.com/taimeline/taimeline-service/internal/infra/storage/procedure"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
)

// --- Стабы зависимостей ---

type stubStaffRepo struct {
	staff []*domain.Staff
	err   error
}

func (s *stubStaffRepo) ListActive(_ context.Context, _ uuid.UUID) ([]*domain.Staff, error) {
	return s.staff, s.err
}

type stubProcedureRepo struct {
	procedure *domain.Procedure
	err       error
}

func (s *stubProcedureRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Procedure, error) {
	return s.procedure, s.err
}

type stubEventRepo struct {
	eventsByStaff map[uuid.UUID][]*domain.Event
	err           error
}

func (s *stubEventRepo) GetByStaffAndRange(_ context.Context, staffID uuid.UUID, _, _ time.Time, _ bool) ([]*domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.eventsByStaff[staffID], nil
}

type stubSettingsRepo struct {
	settings *domain.CalendarSettings
	err      error
}

func (s *stubSettingsRepo) GetByBusiness(_ context.Context, _ uuid.UUID) (*domain.CalendarSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.settings, nil
}

type stubLogger struct{}

func (l *stubLogger) Info(_ string, _ ...interface{})  {}
func (l *stubLogger) Warn(_ string, _ ...interface{})  {}
func (l *stubLogger) Error(_ string, _ ...interface{}) {}

// --- Фикстуры ---

var (
	testBusinessID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testStaffID    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testProcID     = uuid.MustParse("33333333-3333-3333-3333-333333333333")

	// Понедельник
	testMonday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
)

func testStaff() *domain.Staff {
	return &domain.Staff{
		ID:         testStaffID,
		BusinessID: testBusinessID,
		Name:       "Ana",
		IsActive:   true,
		Schedule: domain.WorkSchedule{
			Monday: []domain.TimeInterval{{Start: "09:00", End: "12:00"}},
		},
	}
}

func testProcedure(durationMinutes int) *domain.Procedure {
	return &domain.Procedure{
		ID:              testProcID,
		BusinessID:      testBusinessID,
		Name:            "Haircut",
		DurationMinutes: durationMinutes,
		IsActive:        true,
		StaffIDs:        []uuid.UUID{testStaffID},
	}
}

func testSettings(stepMinutes int) *domain.CalendarSettings {
	return &domain.CalendarSettings{
		BusinessID:        testBusinessID,
		SlotStepMinutes:   stepMinutes,
		HorizonDays:       7,
		MaxSlots:          10,
		RequestTTLMinutes: 1440,
		Timezone:          "UTC",
	}
}

func newTestUseCase(
	staff *stubStaffRepo,
	proc *stubProcedureRepo,
	events *stubEventRepo,
	settings *stubSettingsRepo,
) *UseCase {
	return NewUseCase(staff, proc, events, settings, &stubLogger{})
}

// --- Тесты ---

func TestExecute_SingleSlotPerInterval(t *testing.T) {
	// Шаг 0: один кандидат на рабочий интервал, в его начале
	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(60)},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(0)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
		HorizonDays: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	slot := resp.Slots[0]
	assert.Equal(t, testStaffID, slot.StaffID)
	assert.Equal(t, "Ana", slot.StaffName)
	assert.Equal(t, testMonday.Add(9*time.Hour), slot.StartAt)
	assert.Equal(t, testMonday.Add(10*time.Hour), slot.EndAt)
	assert.Equal(t, 60, slot.DurationMinutes())
}

func TestExecute_DenseGrid(t *testing.T) {
	// Шаг 60 минут на интервале 09:00-12:00 при длительности 60 минут:
	// кандидаты 09:00, 10:00, 11:00
	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(60)},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(60)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
		HorizonDays: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, testMonday.Add(9*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, testMonday.Add(10*time.Hour), resp.Slots[1].StartAt)
	assert.Equal(t, testMonday.Add(11*time.Hour), resp.Slots[2].StartAt)
}

func TestExecute_ConflictingCandidatesExcluded(t *testing.T) {
	// Событие 10:00-11:00 вычеркивает средний кандидат
	busy := &domain.Event{
		StaffID: testStaffID,
		StartAt: testMonday.Add(10 * time.Hour),
		EndAt:   testMonday.Add(11 * time.Hour),
		Status:  domain.EventStatusConfirmed,
	}

	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(60)},
		&stubEventRepo{eventsByStaff: map[uuid.UUID][]*domain.Event{testStaffID: {busy}}},
		&stubSettingsRepo{settings: testSettings(60)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
		HorizonDays: 1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	assert.Equal(t, testMonday.Add(9*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, testMonday.Add(11*time.Hour), resp.Slots[1].StartAt)
}

func TestExecute_CancelledEventDoesNotBlock(t *testing.T) {
	cancelled := &domain.Event{
		StaffID: testStaffID,
		StartAt: testMonday.Add(9 * time.Hour),
		EndAt:   testMonday.Add(12 * time.Hour),
		Status:  domain.EventStatusCancelled,
	}

	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(60)},
		&stubEventRepo{eventsByStaff: map[uuid.UUID][]*domain.Event{testStaffID: {cancelled}}},
		&stubSettingsRepo{settings: testSettings(60)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
		HorizonDays: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_ProcedureTooLongForInterval(t *testing.T) {
	// Процедура 240 минут не влезает в интервал 09:00-12:00
	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(240)},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(0)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
		HorizonDays: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MaxSlotsCap(t *testing.T) {
	settings := testSettings(15)
	settings.MaxSlots = 4

	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(30)},
		&stubEventRepo{},
		&stubSettingsRepo{settings: settings},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
		HorizonDays: 7,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 4)
}

func TestExecute_UnknownProcedureReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{err: procedureRepo.ErrProcedureNotFound},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(0)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InactiveProcedureReturnsEmpty(t *testing.T) {
	proc := testProcedure(60)
	proc.IsActive = false

	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: proc},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(0)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ForeignProcedureReturnsEmpty(t *testing.T) {
	proc := testProcedure(60)
	proc.BusinessID = uuid.New()

	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: proc},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(0)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoQualifiedStaffReturnsEmpty(t *testing.T) {
	proc := testProcedure(60)
	proc.StaffIDs = []uuid.UUID{uuid.New()}

	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: proc},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(0)},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DefaultSettingsWhenNotConfigured(t *testing.T) {
	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(60)},
		&stubEventRepo{},
		&stubSettingsRepo{err: settingsRepo.ErrSettingsNotFound},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
	})
	require.NoError(t, err)

	// Дефолтный шаг 0: один слот на единственный понедельник горизонта
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, testMonday.Add(9*time.Hour), resp.Slots[0].StartAt)
}

func TestExecute_Deterministic(t *testing.T) {
	// Повторный вызов с тем же состоянием дает тот же результат
	uc := newTestUseCase(
		&stubStaffRepo{staff: []*domain.Staff{testStaff()}},
		&stubProcedureRepo{procedure: testProcedure(60)},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(30)},
	)

	req := &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		StartDate:   testMonday,
		HorizonDays: 3,
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_ValidationFailure(t *testing.T) {
	uc := newTestUseCase(
		&stubStaffRepo{},
		&stubProcedureRepo{},
		&stubEventRepo{},
		&stubSettingsRepo{settings: testSettings(0)},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID:  uuid.Nil,
		ProcedureID: testProcID,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		ProcedureID: testProcID,
		HorizonDays: domain.MaxHorizonDays + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
