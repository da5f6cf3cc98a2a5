package create_event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/internal/domain"
	eventRepo "github.com/taimeline/taimeline-service/internal/infra/storage/event"
)

// --- Стабы зависимостей ---

type stubEventRepo struct {
	events    []*domain.Event
	createErr error
	created   *domain.Event
}

func (s *stubEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	event.ID = uuid.New()
	s.created = event
	return event, nil
}

func (s *stubEventRepo) GetByStaffAndRange(_ context.Context, _ uuid.UUID, _, _ time.Time, _ bool) ([]*domain.Event, error) {
	return s.events, nil
}

type stubStaffRepo struct {
	staff *domain.Staff
	err   error
}

func (s *stubStaffRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Staff, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.staff, nil
}

type stubProcedureRepo struct {
	procedure *domain.Procedure
	err       error
}

func (s *stubProcedureRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Procedure, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.procedure, nil
}

// stubTxManager выполняет функцию без реальной транзакции
type stubTxManager struct{}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

	testStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
)

func activeStaff() *domain.Staff {
	return &domain.Staff{
		ID:         testStaffID,
		BusinessID: testBusinessID,
		Name:       "Ana",
		IsActive:   true,
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	events := &stubEventRepo{}
	uc := NewUseCase(events, &stubStaffRepo{staff: activeStaff()}, &stubProcedureRepo{}, &stubTxManager{}, &stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		StaffID:    testStaffID,
		Title:      "Consultation",
		StartAt:    testStart,
		EndAt:      testStart.Add(time.Hour),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "Consultation", resp.Title)
	assert.Equal(t, string(domain.EventStatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.SourceAdmin), resp.Source)
	assert.Equal(t, testStart.Add(time.Hour), resp.EndAt)
}

func TestExecute_ProcedureFillsTitleAndEnd(t *testing.T) {
	proc := &domain.Procedure{
		ID:              testProcID,
		BusinessID:      testBusinessID,
		Name:            "Haircut",
		DurationMinutes: 45,
		IsActive:        true,
	}

	events := &stubEventRepo{}
	uc := NewUseCase(events, &stubStaffRepo{staff: activeStaff()}, &stubProcedureRepo{procedure: proc}, &stubTxManager{}, &stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  testBusinessID,
		StaffID:     testStaffID,
		ProcedureID: &testProcID,
		StartAt:     testStart,
	})
	require.NoError(t, err)

	assert.Equal(t, "Haircut", resp.Title)
	assert.Equal(t, testStart.Add(45*time.Minute), resp.EndAt)
}

func TestExecute_ConflictReturnsSlotNotAvailable(t *testing.T) {
	busy := &domain.Event{
		StaffID: testStaffID,
		StartAt: testStart.Add(30 * time.Minute),
		EndAt:   testStart.Add(90 * time.Minute),
		Status:  domain.EventStatusConfirmed,
	}

	events := &stubEventRepo{events: []*domain.Event{busy}}
	uc := NewUseCase(events, &stubStaffRepo{staff: activeStaff()}, &stubProcedureRepo{}, &stubTxManager{}, &stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		StaffID:    testStaffID,
		Title:      "Consultation",
		StartAt:    testStart,
		EndAt:      testStart.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, events.created)
}

func TestExecute_OverlapConstraintBackstop(t *testing.T) {
	// Exclusion constraint сработал на вставке - конкурентная транзакция успела раньше
	events := &stubEventRepo{createErr: eventRepo.ErrOverlapConstraint}
	uc := NewUseCase(events, &stubStaffRepo{staff: activeStaff()}, &stubProcedureRepo{}, &stubTxManager{}, &stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		StaffID:    testStaffID,
		Title:      "Consultation",
		StartAt:    testStart,
		EndAt:      testStart.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InactiveStaff(t *testing.T) {
	staff := activeStaff()
	staff.IsActive = false

	uc := NewUseCase(&stubEventRepo{}, &stubStaffRepo{staff: staff}, &stubProcedureRepo{}, &stubTxManager{}, &stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		StaffID:    testStaffID,
		Title:      "Consultation",
		StartAt:    testStart,
		EndAt:      testStart.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_ForeignStaff(t *testing.T) {
	staff := activeStaff()
	staff.BusinessID = uuid.New()

	uc := NewUseCase(&stubEventRepo{}, &stubStaffRepo{staff: staff}, &stubProcedureRepo{}, &stubTxManager{}, &stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		StaffID:    testStaffID,
		Title:      "Consultation",
		StartAt:    testStart,
		EndAt:      testStart.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&stubEventRepo{}, &stubStaffRepo{staff: activeStaff()}, &stubProcedureRepo{}, &stubTxManager{}, &stubLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "нет business_id",
			req:  &Request{StaffID: testStaffID, Title: "X", StartAt: testStart, EndAt: testStart.Add(time.Hour)},
		},
		{
			name: "нет end_at без процедуры",
			req:  &Request{BusinessID: testBusinessID, StaffID: testStaffID, Title: "X", StartAt: testStart},
		},
		{
			name: "нет title без процедуры",
			req:  &Request{BusinessID: testBusinessID, StaffID: testStaffID, StartAt: testStart, EndAt: testStart.Add(time.Hour)},
		},
		{
			name: "start_at не раньше end_at",
			req:  &Request{BusinessID: testBusinessID, StaffID: testStaffID, Title: "X", StartAt: testStart, EndAt: testStart},
		},
		{
			name: "неизвестный source",
			req: &Request{BusinessID: testBusinessID, StaffID: testStaffID, Title: "X",
				StartAt: testStart, EndAt: testStart.Add(time.Hour), Source: "telegram"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}
