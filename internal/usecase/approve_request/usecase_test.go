package approve_request

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/internal/domain"
	eventRepo "github.com/taimeline/taimeline-service/internal/infra/storage/event"
	requestRepo "github.com/taimeline/taimeline-service/internal/infra/storage/request"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
)

// --- Стабы зависимостей ---

type stubRequestRepo struct {
	request *domain.BookingRequest
	getErr  error
	updated *domain.BookingRequest
}

func (s *stubRequestRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.BookingRequest, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.request, nil
}

func (s *stubRequestRepo) Update(_ context.Context, request *domain.BookingRequest) error {
	s.updated = request
	return nil
}

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

type stubSettingsRepo struct{}

func (s *stubSettingsRepo) GetByBusiness(_ context.Context, _ uuid.UUID) (*domain.CalendarSettings, error) {
	return nil, settingsRepo.ErrSettingsNotFound
}

type stubTxManager struct{}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubSender struct {
	sentTo   []string
	sentText []string
	err      error
}

func (s *stubSender) SendMessage(_ context.Context, to, text string) error {
	s.sentTo = append(s.sentTo, to)
	s.sentText = append(s.sentText, text)
	return s.err
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
	testRequestID  = uuid.MustParse("44444444-4444-4444-4444-444444444444")

	testStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	testEnd   = testStart.Add(time.Hour)
)

func awaitingRequest() *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:            testRequestID,
		BusinessID:    testBusinessID,
		ClientPhone:   "5511999999999",
		ProcedureID:   testProcID,
		Status:        domain.RequestStatusAwaitingApproval,
		ChosenStaffID: &testStaffID,
		ChosenStartAt: &testStart,
		ChosenEndAt:   &testEnd,
	}
}

func testProcedure() *domain.Procedure {
	return &domain.Procedure{
		ID:         testProcID,
		BusinessID: testBusinessID,
		Name:       "Haircut",
		IsActive:   true,
	}
}

func newTestUseCase(requests *stubRequestRepo, events *stubEventRepo, sender *stubSender) *UseCase {
	return NewUseCase(
		requests,
		events,
		&stubProcedureRepo{procedure: testProcedure()},
		&stubSettingsRepo{},
		&stubTxManager{},
		sender,
		&stubLogger{},
	)
}

// --- Тесты ---

func TestExecute_ApproveCreatesEvent(t *testing.T) {
	requests := &stubRequestRepo{request: awaitingRequest()}
	events := &stubEventRepo{}
	sender := &stubSender{}
	uc := newTestUseCase(requests, events, sender)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		RequestID:  testRequestID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RequestStatusApproved), resp.Status)
	require.NotNil(t, resp.EventID)
	require.NotNil(t, events.created)
	assert.Equal(t, "Haircut", events.created.Title)
	assert.Equal(t, testStaffID, events.created.StaffID)
	assert.Equal(t, domain.EventStatusConfirmed, events.created.Status)
	assert.Equal(t, domain.SourceWhatsApp, events.created.Source)

	require.NotNil(t, requests.updated)
	assert.Equal(t, domain.RequestStatusApproved, requests.updated.Status)

	// Клиент получил подтверждение
	require.Len(t, sender.sentTo, 1)
	assert.Equal(t, "5511999999999", sender.sentTo[0])
	assert.Contains(t, sender.sentText[0], "confirmed")
}

func TestExecute_SlotTakenRejectsAndCommits(t *testing.T) {
	busy := &domain.Event{
		StaffID: testStaffID,
		StartAt: testStart,
		EndAt:   testEnd,
		Status:  domain.EventStatusConfirmed,
	}

	requests := &stubRequestRepo{request: awaitingRequest()}
	events := &stubEventRepo{events: []*domain.Event{busy}}
	sender := &stubSender{}
	uc := newTestUseCase(requests, events, sender)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		RequestID:  testRequestID,
	})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	// Отказ зафиксирован, событие не создано
	require.NotNil(t, resp)
	assert.Equal(t, string(domain.RequestStatusRejected), resp.Status)
	require.NotNil(t, requests.updated)
	assert.Equal(t, domain.RequestStatusRejected, requests.updated.Status)
	assert.Nil(t, events.created)

	// Клиент уведомлён о занятом слоте
	require.Len(t, sender.sentText, 1)
	assert.Contains(t, sender.sentText[0], "no longer available")
}

func TestExecute_OverlapConstraintRejects(t *testing.T) {
	requests := &stubRequestRepo{request: awaitingRequest()}
	events := &stubEventRepo{createErr: eventRepo.ErrOverlapConstraint}
	sender := &stubSender{}
	uc := newTestUseCase(requests, events, sender)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		RequestID:  testRequestID,
	})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	require.NotNil(t, resp)
	assert.Equal(t, string(domain.RequestStatusRejected), resp.Status)
}

func TestExecute_TerminalStatus(t *testing.T) {
	for _, status := range []domain.RequestStatus{
		domain.RequestStatusPendingSelection,
		domain.RequestStatusApproved,
		domain.RequestStatusRejected,
		domain.RequestStatusExpired,
	} {
		t.Run(string(status), func(t *testing.T) {
			request := awaitingRequest()
			request.Status = status

			uc := newTestUseCase(&stubRequestRepo{request: request}, &stubEventRepo{}, &stubSender{})

			_, err := uc.Execute(context.Background(), &Request{
				BusinessID: testBusinessID,
				RequestID:  testRequestID,
			})
			assert.ErrorIs(t, err, ErrInvalidRequestState)
		})
	}
}

func TestExecute_RequestNotFound(t *testing.T) {
	uc := newTestUseCase(&stubRequestRepo{getErr: requestRepo.ErrRequestNotFound}, &stubEventRepo{}, &stubSender{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		RequestID:  testRequestID,
	})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_ForeignBusinessLooksLikeNotFound(t *testing.T) {
	request := awaitingRequest()
	request.BusinessID = uuid.New()

	uc := newTestUseCase(&stubRequestRepo{request: request}, &stubEventRepo{}, &stubSender{})

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		RequestID:  testRequestID,
	})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_SendFailureDoesNotAffectResult(t *testing.T) {
	requests := &stubRequestRepo{request: awaitingRequest()}
	events := &stubEventRepo{}
	sender := &stubSender{err: assert.AnError}
	uc := newTestUseCase(requests, events, sender)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: testBusinessID,
		RequestID:  testRequestID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestStatusApproved), resp.Status)
}
