package handle_inbound_message

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	requestRepo "github.com/taimeline/taimeline-service/internal/infra/storage/request"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
	"github.com/taimeline/taimeline-service/internal/usecase/find_available_slots"
)

// Ключевые слова, запускающие и сопровождающие диалог бронирования
var (
	bookingKeywords = []string{"appointment", "booking", "book", "schedule"}
	cancelKeywords  = []string{"cancel", "reschedule"}
)

// UseCase use case для обработки входящего сообщения из мессенджера.
//
// Диалог ведётся по машине состояний заявки: ключевое слово показывает
// список процедур, номер процедуры запускает подбор слотов, номер слота
// фиксирует выбор и отправляет заявку на подтверждение администратору.
type UseCase struct {
	requestRepo   RequestRepository
	procedureRepo ProcedureRepository
	settingsRepo  SettingsRepository
	slotFinder    SlotFinder
	sender        MessageSender
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	procedureRepo ProcedureRepository,
	settingsRepo SettingsRepository,
	slotFinder SlotFinder,
	sender MessageSender,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		procedureRepo: procedureRepo,
		settingsRepo:  settingsRepo,
		slotFinder:    slotFinder,
		sender:        sender,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case обработки входящего сообщения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("HandleInboundMessage: business=%s, from=%s", req.BusinessID, req.From)

	// 1. Валидация входных данных
	if req.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%w: business_id is required", ErrInvalidRequest)
	}
	if req.From == "" {
		return nil, fmt.Errorf("%w: sender phone is required", ErrInvalidRequest)
	}

	text := strings.ToLower(strings.TrimSpace(req.Text))

	// 2. Ключевые слова бронирования перезапускают диалог со списка процедур.
	// Незавершённый выбор слота закрывается, иначе следующий числовой ответ
	// попал бы в старый список предложений
	if containsAny(text, bookingKeywords) {
		if err := uc.supersedeOpenSelection(ctx, req); err != nil {
			return nil, err
		}
		return uc.replyWelcome(ctx, req)
	}

	// 3. Отмена и перенос обрабатываются только вручную
	if containsAny(text, cancelKeywords) {
		return uc.reply(ctx, req, ActionCancelInfo, cancelInfoMessage(), nil)
	}

	// 4. Числовой ответ - выбор из последнего показанного списка
	if number, err := strconv.Atoi(text); err == nil {
		return uc.handleNumericReply(ctx, req, number)
	}

	// 5. Всё остальное получает подсказку
	return uc.reply(ctx, req, ActionFallback, fallbackMessage(), nil)
}

// handleNumericReply интерпретирует число в контексте открытой заявки переписки.
// Без открытой заявки число означает выбор процедуры, с заявкой в
// pending_selection - выбор слота
func (uc *UseCase) handleNumericReply(ctx context.Context, req *Request, number int) (*Response, error) {
	open, err := uc.requestRepo.GetOpenByConversation(ctx, req.BusinessID, req.From)
	if err != nil {
		if !errors.Is(err, requestRepo.ErrRequestNotFound) {
			uc.logger.Error("HandleInboundMessage: failed to get open request for %s: %v", req.From, err)
			return nil, fmt.Errorf("%w: failed to get open request: %v", ErrInternal, err)
		}
		return uc.handleProcedureSelection(ctx, req, number)
	}

	switch open.Status {
	case domain.RequestStatusPendingSelection:
		return uc.handleSlotSelection(ctx, req, open, number)
	case domain.RequestStatusAwaitingApproval:
		// Заявка уже у администратора, повторный выбор не принимается
		return uc.reply(ctx, req, ActionAwaitingApproval, awaitingApprovalMessage(), &open.ID)
	default:
		return uc.handleProcedureSelection(ctx, req, number)
	}
}

// handleProcedureSelection обрабатывает выбор процедуры по номеру из списка
func (uc *UseCase) handleProcedureSelection(ctx context.Context, req *Request, number int) (*Response, error) {
	procedures, err := uc.procedureRepo.ListActive(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("HandleInboundMessage: failed to list procedures: %v", err)
		return nil, fmt.Errorf("%w: failed to list procedures: %v", ErrInternal, err)
	}

	// Номер вне списка возвращает клиента к списку процедур
	if number < 1 || number > len(procedures) {
		return uc.replyWelcome(ctx, req)
	}

	procedure := procedures[number-1]

	// Подбираем слоты под выбранную процедуру
	slots, err := uc.slotFinder.Execute(ctx, &find_available_slots.Request{
		BusinessID:  req.BusinessID,
		ProcedureID: procedure.ID,
		StartDate:   uc.timeProvider.Now(),
	})
	if err != nil {
		uc.logger.Error("HandleInboundMessage: failed to find slots for procedure=%s: %v", procedure.ID, err)
		return nil, fmt.Errorf("%w: failed to find available slots: %v", ErrInternal, err)
	}

	if len(slots.Slots) == 0 {
		uc.logger.Info("HandleInboundMessage: no slots for procedure=%s", procedure.ID)
		return uc.reply(ctx, req, ActionNoSlots, noSlotsMessage(procedure.Name), nil)
	}

	// Создаем заявку с предложенными слотами
	request := &domain.BookingRequest{
		BusinessID:     req.BusinessID,
		ClientPhone:    req.From,
		ProcedureID:    procedure.ID,
		Offers:         slots.Slots,
		Status:         domain.RequestStatusPendingSelection,
		ConversationID: req.From,
	}
	if req.ProfileName != "" {
		request.ClientName = &req.ProfileName
	}

	created, err := uc.requestRepo.Create(ctx, request)
	if err != nil {
		uc.logger.Error("HandleInboundMessage: failed to create request: %v", err)
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	uc.logger.Info("HandleInboundMessage: created request id=%s with %d offers", created.ID, len(created.Offers))

	loc := uc.businessLocation(ctx, req.BusinessID)
	return uc.reply(ctx, req, ActionSlotsOffered, slotsMessage(procedure.Name, created.Offers, loc), &created.ID)
}

// handleSlotSelection обрабатывает выбор слота по номеру из списка предложений
func (uc *UseCase) handleSlotSelection(ctx context.Context, req *Request, request *domain.BookingRequest, number int) (*Response, error) {
	// Номер вне списка не меняет состояние заявки
	if !request.SelectOffer(number - 1) {
		uc.logger.Info("HandleInboundMessage: request id=%s got out-of-range selection %d", request.ID, number)
		return uc.reply(ctx, req, ActionInvalidSelection, invalidSelectionMessage(len(request.Offers)), &request.ID)
	}

	request.Status = domain.RequestStatusAwaitingApproval
	if err := uc.requestRepo.Update(ctx, request); err != nil {
		uc.logger.Error("HandleInboundMessage: failed to update request id=%s: %v", request.ID, err)
		return nil, fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
	}

	uc.logger.Info("HandleInboundMessage: request id=%s is awaiting approval", request.ID)

	loc := uc.businessLocation(ctx, req.BusinessID)
	offer := request.Offers[number-1]
	return uc.reply(ctx, req, ActionSlotSelected, selectionReceivedMessage(offer, loc), &request.ID)
}

// supersedeOpenSelection переводит открытую заявку в pending_selection в expired
// при перезапуске диалога. Заявка, уже отправленная администратору, не отзывается
func (uc *UseCase) supersedeOpenSelection(ctx context.Context, req *Request) error {
	open, err := uc.requestRepo.GetOpenByConversation(ctx, req.BusinessID, req.From)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return nil
		}
		uc.logger.Error("HandleInboundMessage: failed to get open request for %s: %v", req.From, err)
		return fmt.Errorf("%w: failed to get open request: %v", ErrInternal, err)
	}

	if open.Status != domain.RequestStatusPendingSelection {
		return nil
	}

	open.Status = domain.RequestStatusExpired
	if err := uc.requestRepo.Update(ctx, open); err != nil {
		uc.logger.Error("HandleInboundMessage: failed to supersede request id=%s: %v", open.ID, err)
		return fmt.Errorf("%w: failed to supersede request: %v", ErrInternal, err)
	}

	uc.logger.Info("HandleInboundMessage: request id=%s superseded by dialog restart", open.ID)
	return nil
}

// replyWelcome отправляет приветствие со списком процедур
func (uc *UseCase) replyWelcome(ctx context.Context, req *Request) (*Response, error) {
	procedures, err := uc.procedureRepo.ListActive(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("HandleInboundMessage: failed to list procedures: %v", err)
		return nil, fmt.Errorf("%w: failed to list procedures: %v", ErrInternal, err)
	}

	if len(procedures) == 0 {
		return uc.reply(ctx, req, ActionWelcome, noProceduresMessage(), nil)
	}

	return uc.reply(ctx, req, ActionWelcome, welcomeMessage(procedures), nil)
}

// reply отправляет текст клиенту и формирует результат обработки
func (uc *UseCase) reply(ctx context.Context, req *Request, action, text string, requestID *uuid.UUID) (*Response, error) {
	if err := uc.sender.SendMessage(ctx, req.From, text); err != nil {
		uc.logger.Warn("HandleInboundMessage: failed to send reply to %s: %v", req.From, err)
	}

	return &Response{
		Action:    action,
		Reply:     text,
		RequestID: requestID,
	}, nil
}

func (uc *UseCase) businessLocation(ctx context.Context, businessID uuid.UUID) *time.Location {
	settings, err := uc.settingsRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("HandleInboundMessage: failed to get settings for business=%s: %v", businessID, err)
		}
		settings = domain.DefaultCalendarSettings(businessID)
	}
	return settings.Location()
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
