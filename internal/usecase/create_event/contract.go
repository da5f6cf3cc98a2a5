package create_event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	// GetByStaffAndRange получает события сотрудника, пересекающиеся с [from, to).
	// Внутри транзакции строки блокируются через FOR UPDATE.
	GetByStaffAndRange(ctx context.Context, staffID uuid.UUID, from, to time.Time, includeCancelled bool) ([]*domain.Event, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}

// ProcedureRepository интерфейс репозитория процедур
type ProcedureRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Procedure, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
