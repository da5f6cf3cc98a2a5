package procedures

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// ProcedureRepository интерфейс репозитория процедур
type ProcedureRepository interface {
	Create(ctx context.Context, procedure *domain.Procedure) (*domain.Procedure, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Procedure, error)
	ListActive(ctx context.Context, businessID uuid.UUID) ([]*domain.Procedure, error)
	Update(ctx context.Context, procedure *domain.Procedure) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// StaffRepository интерфейс репозитория сотрудников
// Используется для проверки назначаемых на процедуру сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
