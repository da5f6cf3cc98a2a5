package expire_requests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/internal/domain"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
)

type stubRequestRepo struct {
	count  int64
	err    error
	cutoff time.Time
}

func (s *stubRequestRepo) ExpireOlderThan(_ context.Context, _ uuid.UUID, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.count, s.err
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

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type stubLogger struct{}

func (l *stubLogger) Info(_ string, _ ...interface{})  {}
func (l *stubLogger) Warn(_ string, _ ...interface{})  {}
func (l *stubLogger) Error(_ string, _ ...interface{}) {}

var testBusinessID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func TestExecute_CutoffFromSettingsTTL(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	requests := &stubRequestRepo{count: 3}
	settings := &stubSettingsRepo{settings: &domain.CalendarSettings{
		BusinessID:        testBusinessID,
		RequestTTLMinutes: 60,
		Timezone:          "UTC",
	}}

	uc := NewUseCase(requests, settings, &stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: testBusinessID})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.ExpiredCount)
	assert.Equal(t, now.Add(-time.Hour), requests.cutoff)
}

func TestExecute_DefaultTTLWhenNotConfigured(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	requests := &stubRequestRepo{}
	uc := NewUseCase(requests, &stubSettingsRepo{err: settingsRepo.ErrSettingsNotFound}, &stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	_, err := uc.Execute(context.Background(), &Request{BusinessID: testBusinessID})
	require.NoError(t, err)

	expected := now.Add(-time.Duration(domain.DefaultRequestTTLMinutes) * time.Minute)
	assert.Equal(t, expected, requests.cutoff)
}

func TestExecute_RequiresBusinessID(t *testing.T) {
	uc := NewUseCase(&stubRequestRepo{}, &stubSettingsRepo{}, &stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestExecute_RepoFailure(t *testing.T) {
	requests := &stubRequestRepo{err: assert.AnError}
	uc := NewUseCase(requests, &stubSettingsRepo{err: settingsRepo.ErrSettingsNotFound}, &stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: testBusinessID})
	assert.ErrorIs(t, err, ErrInternal)
}
