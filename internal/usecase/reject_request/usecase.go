package reject_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	requestRepo "github.com/taimeline/taimeline-service/internal/infra/storage/request"
)

// UseCase use case для отклонения заявки администратором
type UseCase struct {
	requestRepo RequestRepository
	txManager   TransactionManager
	sender      MessageSender
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	txManager TransactionManager,
	sender MessageSender,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		txManager:   txManager,
		sender:      sender,
		logger:      logger,
	}
}

// Execute выполняет use case отклонения заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectRequest: business=%s, request=%s", req.BusinessID, req.RequestID)

	// 1. Валидация входных данных
	if req.BusinessID == uuid.Nil || req.RequestID == uuid.Nil {
		return nil, fmt.Errorf("%w: business_id and request_id are required", ErrInvalidRequest)
	}

	var result *domain.BookingRequest

	// 2. Выполняем переход машины состояний в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем заявку с блокировкой (FOR UPDATE)
		request, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			uc.logger.Error("RejectRequest: failed to get request id=%s: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		if request.BusinessID != req.BusinessID {
			uc.logger.Warn("RejectRequest: request id=%s does not belong to business=%s",
				req.RequestID, req.BusinessID)
			return ErrRequestNotFound
		}

		// 2.2. Отклонить можно только заявку, ожидающую подтверждения
		if !request.Status.CanTransitionTo(domain.RequestStatusRejected) {
			uc.logger.Warn("RejectRequest: request id=%s has status %s", req.RequestID, request.Status)
			return ErrInvalidRequestState
		}

		// 2.3. Переводим заявку в rejected
		request.Status = domain.RequestStatusRejected
		if err := uc.requestRepo.Update(txCtx, request); err != nil {
			uc.logger.Error("RejectRequest: failed to update request id=%s: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
		}

		result = request
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Уведомляем клиента. Ошибка отправки не откатывает уже принятое решение
	text := "Unfortunately, we could not confirm your appointment request. " +
		"Please contact us or send \"appointment\" to try a different time."
	if err := uc.sender.SendMessage(ctx, result.ClientPhone, text); err != nil {
		uc.logger.Warn("RejectRequest: failed to notify client %s: %v", result.ClientPhone, err)
	}

	uc.logger.Info("RejectRequest: request id=%s rejected", result.ID)

	return &Response{
		RequestID: result.ID,
		Status:    string(result.Status),
	}, nil
}
