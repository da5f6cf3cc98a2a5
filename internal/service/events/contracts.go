package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.StaffEventsFilter) ([]*domain.Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error
	Cancel(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
