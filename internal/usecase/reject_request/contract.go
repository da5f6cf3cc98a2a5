package reject_request

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error)
	Update(ctx context.Context, request *domain.BookingRequest) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MessageSender интерфейс для отправки уведомлений клиенту в мессенджер
type MessageSender interface {
	SendMessage(ctx context.Context, to, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
