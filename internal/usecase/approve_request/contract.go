package approve_request

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	// GetByID получает заявку. Внутри транзакции строка блокируется через FOR UPDATE.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error)
	Update(ctx context.Context, request *domain.BookingRequest) error
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetByStaffAndRange(ctx context.Context, staffID uuid.UUID, from, to time.Time, includeCancelled bool) ([]*domain.Event, error)
}

// ProcedureRepository интерфейс репозитория процедур
type ProcedureRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Procedure, error)
}

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.CalendarSettings, error)
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
