package requests

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error)
	ListOpenByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BookingRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
