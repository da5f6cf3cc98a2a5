package handle_inbound_message

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taimeline/taimeline-service/internal/domain"
	requestRepo "github.com/taimeline/taimeline-service/internal/infra/storage/request"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
	"github.com/taimeline/taimeline-service/internal/usecase/find_available_slots"
)

// --- Стабы зависимостей ---

type stubRequestRepo struct {
	open      *domain.BookingRequest
	openErr   error
	created   *domain.BookingRequest
	updated   *domain.BookingRequest
	createErr error
}

func (s *stubRequestRepo) Create(_ context.Context, request *domain.BookingRequest) (*domain.BookingRequest, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	request.ID = uuid.New()
	s.created = request
	return request, nil
}

func (s *stubRequestRepo) GetOpenByConversation(_ context.Context, _ uuid.UUID, _ string) (*domain.BookingRequest, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	if s.open == nil {
		return nil, requestRepo.ErrRequestNotFound
	}
	return s.open, nil
}

func (s *stubRequestRepo) Update(_ context.Context, request *domain.BookingRequest) error {
	s.updated = request
	return nil
}

type stubProcedureRepo struct {
	procedures []*domain.Procedure
	err        error
}

func (s *stubProcedureRepo) ListActive(_ context.Context, _ uuid.UUID) ([]*domain.Procedure, error) {
	return s.procedures, s.err
}

type stubSettingsRepo struct{}

func (s *stubSettingsRepo) GetByBusiness(_ context.Context, _ uuid.UUID) (*domain.CalendarSettings, error) {
	return nil, settingsRepo.ErrSettingsNotFound
}

type stubSlotFinder struct {
	slots []domain.AvailableSlot
	err   error
	req   *find_available_slots.Request
}

func (s *stubSlotFinder) Execute(_ context.Context, req *find_available_slots.Request) (*find_available_slots.Response, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &find_available_slots.Response{
		BusinessID:  req.BusinessID,
		ProcedureID: req.ProcedureID,
		Slots:       s.slots,
	}, nil
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

	testPhone = "5511999999999"
	testStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
)

func testProcedures() []*domain.Procedure {
	return []*domain.Procedure{
		{ID: testProcID, BusinessID: testBusinessID, Name: "Haircut", DurationMinutes: 60, IsActive: true},
		{ID: uuid.New(), BusinessID: testBusinessID, Name: "Manicure", DurationMinutes: 45, IsActive: true},
	}
}

func testOffers() []domain.AvailableSlot {
	return []domain.AvailableSlot{
		{StaffID: testStaffID, StaffName: "Ana", StartAt: testStart, EndAt: testStart.Add(time.Hour)},
		{StaffID: testStaffID, StaffName: "Ana", StartAt: testStart.Add(2 * time.Hour), EndAt: testStart.Add(3 * time.Hour)},
	}
}

func inboundMessage(text string) *Request {
	return &Request{
		BusinessID:  testBusinessID,
		From:        testPhone,
		ProfileName: "Maria",
		Text:        text,
	}
}

func newTestUseCase(requests *stubRequestRepo, procedures *stubProcedureRepo, finder *stubSlotFinder, sender *stubSender) *UseCase {
	return NewUseCase(requests, procedures, &stubSettingsRepo{}, finder, sender, &stubLogger{})
}

// --- Тесты ---

func TestExecute_BookingKeywordShowsProcedures(t *testing.T) {
	sender := &stubSender{}
	uc := newTestUseCase(&stubRequestRepo{}, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, sender)

	resp, err := uc.Execute(context.Background(), inboundMessage("I want an APPOINTMENT please"))
	require.NoError(t, err)

	assert.Equal(t, ActionWelcome, resp.Action)
	assert.Contains(t, resp.Reply, "1. Haircut (60 min)")
	assert.Contains(t, resp.Reply, "2. Manicure (45 min)")

	require.Len(t, sender.sentTo, 1)
	assert.Equal(t, testPhone, sender.sentTo[0])
}

func TestExecute_BookingKeywordSupersedesOpenSelection(t *testing.T) {
	open := &domain.BookingRequest{
		ID:             uuid.New(),
		BusinessID:     testBusinessID,
		ClientPhone:    testPhone,
		ProcedureID:    testProcID,
		Offers:         testOffers(),
		Status:         domain.RequestStatusPendingSelection,
		ConversationID: testPhone,
	}

	procedures := testProcedures()
	requests := &stubRequestRepo{open: open}
	finder := &stubSlotFinder{slots: testOffers()}
	uc := newTestUseCase(requests, &stubProcedureRepo{procedures: procedures}, finder, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("booking"))
	require.NoError(t, err)

	// Незавершённый выбор закрыт, диалог начат заново
	assert.Equal(t, ActionWelcome, resp.Action)
	require.NotNil(t, requests.updated)
	assert.Equal(t, domain.RequestStatusExpired, requests.updated.Status)

	// Следующий числовой ответ трактуется как выбор процедуры, не слота
	requests.open = nil
	requests.updated = nil
	resp, err = uc.Execute(context.Background(), inboundMessage("2"))
	require.NoError(t, err)

	assert.Equal(t, ActionSlotsOffered, resp.Action)
	require.NotNil(t, finder.req)
	assert.Equal(t, procedures[1].ID, finder.req.ProcedureID)
}

func TestExecute_BookingKeywordKeepsAwaitingApproval(t *testing.T) {
	open := &domain.BookingRequest{
		ID:             uuid.New(),
		BusinessID:     testBusinessID,
		ClientPhone:    testPhone,
		Status:         domain.RequestStatusAwaitingApproval,
		ConversationID: testPhone,
	}

	requests := &stubRequestRepo{open: open}
	uc := newTestUseCase(requests, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("booking"))
	require.NoError(t, err)

	// Заявка у администратора не отзывается перезапуском диалога
	assert.Equal(t, ActionWelcome, resp.Action)
	assert.Nil(t, requests.updated)
	assert.Equal(t, domain.RequestStatusAwaitingApproval, open.Status)
}

func TestExecute_ProcedureSelectionCreatesRequest(t *testing.T) {
	requests := &stubRequestRepo{}
	finder := &stubSlotFinder{slots: testOffers()}
	uc := newTestUseCase(requests, &stubProcedureRepo{procedures: testProcedures()}, finder, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("1"))
	require.NoError(t, err)

	assert.Equal(t, ActionSlotsOffered, resp.Action)
	require.NotNil(t, resp.RequestID)

	require.NotNil(t, requests.created)
	assert.Equal(t, domain.RequestStatusPendingSelection, requests.created.Status)
	assert.Equal(t, testPhone, requests.created.ClientPhone)
	assert.Equal(t, testPhone, requests.created.ConversationID)
	assert.Equal(t, testProcID, requests.created.ProcedureID)
	assert.Len(t, requests.created.Offers, 2)
	require.NotNil(t, requests.created.ClientName)
	assert.Equal(t, "Maria", *requests.created.ClientName)

	// Резолвер вызван по выбранной процедуре
	require.NotNil(t, finder.req)
	assert.Equal(t, testProcID, finder.req.ProcedureID)
}

func TestExecute_NoSlotsDeclines(t *testing.T) {
	requests := &stubRequestRepo{}
	uc := newTestUseCase(requests, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("1"))
	require.NoError(t, err)

	assert.Equal(t, ActionNoSlots, resp.Action)
	assert.Contains(t, resp.Reply, "Haircut")

	// Заявка без предложений не создаётся
	assert.Nil(t, requests.created)
}

func TestExecute_SlotSelectionMovesToAwaitingApproval(t *testing.T) {
	open := &domain.BookingRequest{
		ID:             uuid.New(),
		BusinessID:     testBusinessID,
		ClientPhone:    testPhone,
		ProcedureID:    testProcID,
		Offers:         testOffers(),
		Status:         domain.RequestStatusPendingSelection,
		ConversationID: testPhone,
	}

	requests := &stubRequestRepo{open: open}
	uc := newTestUseCase(requests, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("2"))
	require.NoError(t, err)

	assert.Equal(t, ActionSlotSelected, resp.Action)
	require.NotNil(t, requests.updated)
	assert.Equal(t, domain.RequestStatusAwaitingApproval, requests.updated.Status)
	require.NotNil(t, requests.updated.ChosenStartAt)
	assert.Equal(t, testStart.Add(2*time.Hour), *requests.updated.ChosenStartAt)
}

func TestExecute_OutOfRangeSelectionKeepsState(t *testing.T) {
	open := &domain.BookingRequest{
		ID:             uuid.New(),
		BusinessID:     testBusinessID,
		ClientPhone:    testPhone,
		ProcedureID:    testProcID,
		Offers:         testOffers(),
		Status:         domain.RequestStatusPendingSelection,
		ConversationID: testPhone,
	}

	requests := &stubRequestRepo{open: open}
	uc := newTestUseCase(requests, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("9"))
	require.NoError(t, err)

	assert.Equal(t, ActionInvalidSelection, resp.Action)
	assert.Nil(t, requests.updated)
	assert.Equal(t, domain.RequestStatusPendingSelection, open.Status)
	assert.Nil(t, open.ChosenStartAt)
}

func TestExecute_AwaitingApprovalRepliesStatus(t *testing.T) {
	open := &domain.BookingRequest{
		ID:             uuid.New(),
		BusinessID:     testBusinessID,
		ClientPhone:    testPhone,
		Status:         domain.RequestStatusAwaitingApproval,
		ConversationID: testPhone,
	}

	uc := newTestUseCase(&stubRequestRepo{open: open}, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("1"))
	require.NoError(t, err)

	assert.Equal(t, ActionAwaitingApproval, resp.Action)
	require.NotNil(t, resp.RequestID)
	assert.Equal(t, open.ID, *resp.RequestID)
}

func TestExecute_CancelKeyword(t *testing.T) {
	uc := newTestUseCase(&stubRequestRepo{}, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("I need to cancel my visit"))
	require.NoError(t, err)

	assert.Equal(t, ActionCancelInfo, resp.Action)
}

func TestExecute_OutOfRangeProcedureShowsWelcome(t *testing.T) {
	uc := newTestUseCase(&stubRequestRepo{}, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("7"))
	require.NoError(t, err)

	assert.Equal(t, ActionWelcome, resp.Action)
}

func TestExecute_UnrecognizedTextFallsBack(t *testing.T) {
	uc := newTestUseCase(&stubRequestRepo{}, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("hello there"))
	require.NoError(t, err)

	assert.Equal(t, ActionFallback, resp.Action)
}

func TestExecute_NoProcedures(t *testing.T) {
	uc := newTestUseCase(&stubRequestRepo{}, &stubProcedureRepo{}, &stubSlotFinder{}, &stubSender{})

	resp, err := uc.Execute(context.Background(), inboundMessage("booking"))
	require.NoError(t, err)

	assert.Equal(t, ActionWelcome, resp.Action)
	assert.Contains(t, resp.Reply, "no services available")
}

func TestExecute_SendFailureDoesNotFailProcessing(t *testing.T) {
	sender := &stubSender{err: assert.AnError}
	uc := newTestUseCase(&stubRequestRepo{}, &stubProcedureRepo{procedures: testProcedures()}, &stubSlotFinder{}, sender)

	resp, err := uc.Execute(context.Background(), inboundMessage("schedule"))
	require.NoError(t, err)
	assert.Equal(t, ActionWelcome, resp.Action)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&stubRequestRepo{}, &stubProcedureRepo{}, &stubSlotFinder{}, &stubSender{})

	_, err := uc.Execute(context.Background(), &Request{From: testPhone, Text: "hi"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: testBusinessID, Text: "hi"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
