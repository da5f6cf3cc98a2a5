package procedures

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/internal/domain"
	staffRepo "github.com/taimeline/taimeline-service/internal/infra/storage/staff"
	"github.com/taimeline/taimeline-service/internal/service/procedures/models"
	"github.com/taimeline/taimeline-service/pkg/ptr"
)

type stubProcedureRepo struct {
	procedure   *domain.Procedure
	getErr      error
	created     *domain.Procedure
	updated     *domain.Procedure
	softDeleted []uuid.UUID
}

func (s *stubProcedureRepo) Create(_ context.Context, procedure *domain.Procedure) (*domain.Procedure, error) {
	procedure.ID = uuid.New()
	s.created = procedure
	return procedure, nil
}

func (s *stubProcedureRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Procedure, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.procedure, nil
}

func (s *stubProcedureRepo) ListActive(_ context.Context, _ uuid.UUID) ([]*domain.Procedure, error) {
	if s.procedure == nil {
		return nil, nil
	}
	return []*domain.Procedure{s.procedure}, nil
}

func (s *stubProcedureRepo) Update(_ context.Context, procedure *domain.Procedure) error {
	s.updated = procedure
	return nil
}

func (s *stubProcedureRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.softDeleted = append(s.softDeleted, id)
	return nil
}

type stubStaffRepo struct {
	staff  *domain.Staff
	getErr error
}

func (s *stubStaffRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Staff, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.staff, nil
}

type stubLogger struct{}

func (l *stubLogger) Info(_ string, _ ...interface{})  {}
func (l *stubLogger) Warn(_ string, _ ...interface{})  {}
func (l *stubLogger) Error(_ string, _ ...interface{}) {}

var (
	testBusinessID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testStaffID     = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testProcedureID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func testStaff() *domain.Staff {
	return &domain.Staff{
		ID:         testStaffID,
		BusinessID: testBusinessID,
		Name:       "Ana",
		IsActive:   true,
	}
}

func testProcedure() *domain.Procedure {
	return &domain.Procedure{
		ID:              testProcedureID,
		BusinessID:      testBusinessID,
		Name:            "Haircut",
		DurationMinutes: 60,
		IsActive:        true,
		StaffIDs:        []uuid.UUID{testStaffID},
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &stubProcedureRepo{}
	svc := NewService(repo, &stubStaffRepo{staff: testStaff()}, &stubLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateProcedureRequest{
		BusinessID:      testBusinessID,
		Name:            "Haircut",
		DurationMinutes: 60,
		StaffIDs:        []uuid.UUID{testStaffID},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, "Haircut", resp.Name)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, repo.created.IsActive)
}

func TestCreate_DurationValidation(t *testing.T) {
	tests := []struct {
		name            string
		durationMinutes int
		wantErr         bool
	}{
		{"минимальная длительность", domain.MinProcedureDurationMinutes, false},
		{"кратная длительность", 45, false},
		{"меньше минимума", domain.MinProcedureDurationMinutes - 1, true},
		{"больше максимума", domain.MaxProcedureDurationMinutes + 15, true},
		{"не кратна шагу", 25, true},
		{"не кратна шагу, в пределах границ", 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubProcedureRepo{}, &stubStaffRepo{staff: testStaff()}, &stubLogger{})

			_, err := svc.Create(context.Background(), &models.CreateProcedureRequest{
				BusinessID:      testBusinessID,
				Name:            "Haircut",
				DurationMinutes: tt.durationMinutes,
			})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreate_UnknownStaff(t *testing.T) {
	repo := &stubProcedureRepo{}
	svc := NewService(repo, &stubStaffRepo{getErr: staffRepo.ErrStaffNotFound}, &stubLogger{})

	_, err := svc.Create(context.Background(), &models.CreateProcedureRequest{
		BusinessID:      testBusinessID,
		Name:            "Haircut",
		DurationMinutes: 60,
		StaffIDs:        []uuid.UUID{testStaffID},
	})
	require.ErrorIs(t, err, ErrStaffNotFound)
	assert.Nil(t, repo.created)
}

func TestCreate_ForeignStaff(t *testing.T) {
	foreign := testStaff()
	foreign.BusinessID = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	svc := NewService(&stubProcedureRepo{}, &stubStaffRepo{staff: foreign}, &stubLogger{})

	_, err := svc.Create(context.Background(), &models.CreateProcedureRequest{
		BusinessID:      testBusinessID,
		Name:            "Haircut",
		DurationMinutes: 60,
		StaffIDs:        []uuid.UUID{testStaffID},
	})
	require.ErrorIs(t, err, ErrStaffNotFound)
}

func TestUpdate_InvalidDurationNotPersisted(t *testing.T) {
	repo := &stubProcedureRepo{procedure: testProcedure()}
	svc := NewService(repo, &stubStaffRepo{staff: testStaff()}, &stubLogger{})

	_, err := svc.Update(context.Background(), testBusinessID, testProcedureID,
		&models.UpdateProcedureRequest{DurationMinutes: ptr.Ptr(70)})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.updated)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &stubProcedureRepo{procedure: testProcedure()}
	svc := NewService(repo, &stubStaffRepo{staff: testStaff()}, &stubLogger{})

	resp, err := svc.Update(context.Background(), testBusinessID, testProcedureID,
		&models.UpdateProcedureRequest{
			Name:            ptr.Ptr("Haircut Deluxe"),
			DurationMinutes: ptr.Ptr(90),
		})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, "Haircut Deluxe", resp.Name)
	assert.Equal(t, 90, resp.DurationMinutes)
	// Непереданные поля не меняются
	assert.Equal(t, []uuid.UUID{testStaffID}, resp.StaffIDs)
}

func TestUpdate_ForeignBusinessLooksLikeNotFound(t *testing.T) {
	repo := &stubProcedureRepo{procedure: testProcedure()}
	svc := NewService(repo, &stubStaffRepo{staff: testStaff()}, &stubLogger{})

	otherBusiness := uuid.MustParse("44444444-4444-4444-4444-444444444444")
	_, err := svc.Update(context.Background(), otherBusiness, testProcedureID,
		&models.UpdateProcedureRequest{Name: ptr.Ptr("Haircut Deluxe")})
	require.ErrorIs(t, err, ErrProcedureNotFound)
	assert.Nil(t, repo.updated)
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := &stubProcedureRepo{procedure: testProcedure()}
	svc := NewService(repo, &stubStaffRepo{staff: testStaff()}, &stubLogger{})

	err := svc.Delete(context.Background(), testBusinessID, testProcedureID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{testProcedureID}, repo.softDeleted)
}
