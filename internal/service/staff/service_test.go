package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/internal/domain"
	staffRepo "github.com/taimeline/taimeline-service/internal/infra/storage/staff"
	"github.com/taimeline/taimeline-service/internal/service/staff/models"
)

type stubStaffRepo struct {
	staff       *domain.Staff
	getErr      error
	created     *domain.Staff
	updated     *domain.Staff
	softDeleted []uuid.UUID
}

func (s *stubStaffRepo) Create(_ context.Context, staff *domain.Staff) (*domain.Staff, error) {
	staff.ID = uuid.New()
	s.created = staff
	return staff, nil
}

func (s *stubStaffRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Staff, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.staff, nil
}

func (s *stubStaffRepo) ListActive(_ context.Context, _ uuid.UUID) ([]*domain.Staff, error) {
	if s.staff == nil {
		return nil, nil
	}
	return []*domain.Staff{s.staff}, nil
}

func (s *stubStaffRepo) Update(_ context.Context, staff *domain.Staff) error {
	s.updated = staff
	return nil
}

func (s *stubStaffRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.softDeleted = append(s.softDeleted, id)
	return nil
}

type stubLogger struct{}

func (l *stubLogger) Info(_ string, _ ...interface{})  {}
func (l *stubLogger) Warn(_ string, _ ...interface{})  {}
func (l *stubLogger) Error(_ string, _ ...interface{}) {}

var (
	testBusinessID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testStaffID    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func validSchedule() domain.WorkSchedule {
	return domain.WorkSchedule{
		Monday: []domain.TimeInterval{{Start: "09:00", End: "18:00"}},
	}
}

func existingStaff() *domain.Staff {
	return &domain.Staff{
		ID:         testStaffID,
		BusinessID: testBusinessID,
		Name:       "Ana",
		IsActive:   true,
		Schedule:   validSchedule(),
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &stubStaffRepo{}
	svc := NewService(repo, &stubLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateStaffRequest{
		BusinessID: testBusinessID,
		Name:       "Ana",
		Role:       "hairdresser",
		Schedule:   validSchedule(),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.True(t, resp.IsActive)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Ana", repo.created.Name)
}

func TestCreate_InvalidSchedule(t *testing.T) {
	svc := NewService(&stubStaffRepo{}, &stubLogger{})

	_, err := svc.Create(context.Background(), &models.CreateStaffRequest{
		BusinessID: testBusinessID,
		Name:       "Ana",
		Schedule: domain.WorkSchedule{
			Monday: []domain.TimeInterval{
				{Start: "09:00", End: "13:00"},
				{Start: "12:00", End: "18:00"},
			},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestCreate_MissingName(t *testing.T) {
	svc := NewService(&stubStaffRepo{}, &stubLogger{})

	_, err := svc.Create(context.Background(), &models.CreateStaffRequest{
		BusinessID: testBusinessID,
		Schedule:   validSchedule(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &stubStaffRepo{staff: existingStaff()}
	svc := NewService(repo, &stubLogger{})

	newName := "Beatriz"
	resp, err := svc.Update(context.Background(), testBusinessID, testStaffID, &models.UpdateStaffRequest{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Beatriz", resp.Name)
	// Незатронутые поля сохраняются
	assert.True(t, resp.IsActive)
	assert.Len(t, resp.Schedule.Monday, 1)
}

func TestUpdate_InvalidSchedule(t *testing.T) {
	repo := &stubStaffRepo{staff: existingStaff()}
	svc := NewService(repo, &stubLogger{})

	bad := domain.WorkSchedule{
		Tuesday: []domain.TimeInterval{{Start: "18:00", End: "09:00"}},
	}
	_, err := svc.Update(context.Background(), testBusinessID, testStaffID, &models.UpdateStaffRequest{
		Schedule: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Nil(t, repo.updated)
}

func TestUpdate_ForeignBusinessLooksLikeNotFound(t *testing.T) {
	foreign := existingStaff()
	foreign.BusinessID = uuid.New()

	svc := NewService(&stubStaffRepo{staff: foreign}, &stubLogger{})

	newName := "Beatriz"
	_, err := svc.Update(context.Background(), testBusinessID, testStaffID, &models.UpdateStaffRequest{
		Name: &newName,
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := &stubStaffRepo{staff: existingStaff()}
	svc := NewService(repo, &stubLogger{})

	require.NoError(t, svc.Delete(context.Background(), testBusinessID, testStaffID))
	assert.Equal(t, []uuid.UUID{testStaffID}, repo.softDeleted)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&stubStaffRepo{getErr: staffRepo.ErrStaffNotFound}, &stubLogger{})

	_, err := svc.GetByID(context.Background(), testBusinessID, testStaffID)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
