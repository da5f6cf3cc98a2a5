package approve_request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	eventRepo "github.com/taimeline/taimeline-service/internal/infra/storage/event"
	procedureRepo "github.com/taimeline/taimeline-service/internal/infra/storage/procedure"
	requestRepo "github.com/taimeline/taimeline-service/internal/infra/storage/request"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
)

// UseCase use case для одобрения заявки администратором
type UseCase struct {
	requestRepo   RequestRepository
	eventRepo     EventRepository
	procedureRepo ProcedureRepository
	settingsRepo  SettingsRepository
	txManager     TransactionManager
	sender        MessageSender
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	eventRepo EventRepository,
	procedureRepo ProcedureRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	sender MessageSender,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		eventRepo:     eventRepo,
		procedureRepo: procedureRepo,
		settingsRepo:  settingsRepo,
		txManager:     txManager,
		sender:        sender,
		logger:        logger,
	}
}

// Execute выполняет use case одобрения заявки.
//
// Проверка статуса, повторная проверка занятости слота и создание события
// выполняются в одной сериализуемой транзакции. Если слот успели занять,
// заявка фиксируется в rejected, а не откатывается - клиент получает
// уведомление о недоступности в обоих исходах.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveRequest: business=%s, request=%s", req.BusinessID, req.RequestID)

	// 1. Валидация входных данных
	if req.BusinessID == uuid.Nil || req.RequestID == uuid.Nil {
		return nil, fmt.Errorf("%w: business_id and request_id are required", ErrInvalidRequest)
	}

	var (
		result        *domain.BookingRequest
		createdEvent  *domain.Event
		procedureName string
		slotTaken     bool
	)

	// 2. Выполняем переход машины состояний в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем заявку с блокировкой (FOR UPDATE)
		request, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			uc.logger.Error("ApproveRequest: failed to get request id=%s: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		if request.BusinessID != req.BusinessID {
			uc.logger.Warn("ApproveRequest: request id=%s does not belong to business=%s",
				req.RequestID, req.BusinessID)
			return ErrRequestNotFound
		}

		// 2.2. Одобрить можно только заявку, ожидающую подтверждения
		if request.Status != domain.RequestStatusAwaitingApproval {
			uc.logger.Warn("ApproveRequest: request id=%s has status %s", req.RequestID, request.Status)
			return ErrInvalidRequestState
		}

		if request.ChosenStaffID == nil || request.ChosenStartAt == nil || request.ChosenEndAt == nil {
			uc.logger.Error("ApproveRequest: request id=%s is awaiting approval without a chosen slot", req.RequestID)
			return fmt.Errorf("%w: request has no chosen slot", ErrInternal)
		}

		// 2.3. Получаем процедуру для названия события
		procedure, err := uc.procedureRepo.GetByID(txCtx, request.ProcedureID)
		if err != nil && !errors.Is(err, procedureRepo.ErrProcedureNotFound) {
			uc.logger.Error("ApproveRequest: failed to get procedure id=%s: %v", request.ProcedureID, err)
			return fmt.Errorf("%w: failed to get procedure: %v", ErrInternal, err)
		}

		procedureName = "Appointment"
		if procedure != nil {
			procedureName = procedure.Name
		}

		// 2.4. Повторно проверяем занятость слота с блокировкой (FOR UPDATE)
		events, err := uc.eventRepo.GetByStaffAndRange(txCtx, *request.ChosenStaffID,
			*request.ChosenStartAt, *request.ChosenEndAt, false)
		if err != nil {
			uc.logger.Error("ApproveRequest: failed to get staff events: %v", err)
			return fmt.Errorf("%w: failed to get staff events: %v", ErrInternal, err)
		}

		if domain.HasConflict(*request.ChosenStartAt, *request.ChosenEndAt, events) {
			// Слот заняли между выбором клиента и одобрением.
			// Фиксируем rejected и коммитим - транзакция не откатывается.
			uc.logger.Warn("ApproveRequest: chosen slot for request id=%s is taken, rejecting", req.RequestID)

			request.Status = domain.RequestStatusRejected
			if err := uc.requestRepo.Update(txCtx, request); err != nil {
				uc.logger.Error("ApproveRequest: failed to reject request id=%s: %v", req.RequestID, err)
				return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
			}

			slotTaken = true
			result = request
			return nil
		}

		// 2.5. Создаем подтверждённое событие из заявки
		event := &domain.Event{
			BusinessID:  request.BusinessID,
			Title:       procedureName,
			StaffID:     *request.ChosenStaffID,
			ProcedureID: &request.ProcedureID,
			ClientName:  request.ClientName,
			ClientPhone: &request.ClientPhone,
			StartAt:     *request.ChosenStartAt,
			EndAt:       *request.ChosenEndAt,
			Status:      domain.EventStatusConfirmed,
			Source:      domain.SourceWhatsApp,
		}

		created, err := uc.eventRepo.Create(txCtx, event)
		if err != nil {
			if errors.Is(err, eventRepo.ErrOverlapConstraint) {
				uc.logger.Warn("ApproveRequest: overlap constraint violated for request id=%s, rejecting", req.RequestID)

				request.Status = domain.RequestStatusRejected
				if err := uc.requestRepo.Update(txCtx, request); err != nil {
					return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
				}

				slotTaken = true
				result = request
				return nil
			}
			uc.logger.Error("ApproveRequest: failed to create event: %v", err)
			return fmt.Errorf("%w: failed to create event: %v", ErrInternal, err)
		}

		// 2.6. Переводим заявку в approved
		request.Status = domain.RequestStatusApproved
		if err := uc.requestRepo.Update(txCtx, request); err != nil {
			uc.logger.Error("ApproveRequest: failed to approve request id=%s: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
		}

		createdEvent = created
		result = request
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Уведомляем клиента. Ошибка отправки не откатывает уже принятое решение
	uc.notifyClient(ctx, result, procedureName, slotTaken)

	if slotTaken {
		return &Response{
			RequestID: result.ID,
			Status:    string(result.Status),
		}, ErrSlotNoLongerAvailable
	}

	uc.logger.Info("ApproveRequest: request id=%s approved, event id=%s", result.ID, createdEvent.ID)

	return &Response{
		RequestID: result.ID,
		Status:    string(result.Status),
		EventID:   &createdEvent.ID,
		StaffID:   result.ChosenStaffID,
		StartAt:   result.ChosenStartAt,
		EndAt:     result.ChosenEndAt,
	}, nil
}

// notifyClient отправляет клиенту итог рассмотрения заявки
func (uc *UseCase) notifyClient(ctx context.Context, request *domain.BookingRequest, procedureName string, slotTaken bool) {
	var text string
	if slotTaken {
		text = slotTakenMessage()
	} else {
		loc := uc.businessLocation(ctx, request.BusinessID)
		text = confirmationMessage(procedureName, *request.ChosenStartAt, loc)
	}

	if err := uc.sender.SendMessage(ctx, request.ClientPhone, text); err != nil {
		uc.logger.Warn("ApproveRequest: failed to notify client %s: %v", request.ClientPhone, err)
	}
}

func (uc *UseCase) businessLocation(ctx context.Context, businessID uuid.UUID) *time.Location {
	settings, err := uc.settingsRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("ApproveRequest: failed to get settings for business=%s: %v", businessID, err)
		}
		settings = domain.DefaultCalendarSettings(businessID)
	}
	return settings.Location()
}
