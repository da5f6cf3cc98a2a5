package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	ListActive(ctx context.Context, businessID uuid.UUID) ([]*domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
