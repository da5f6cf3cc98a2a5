package find_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	// ListActive получает всех активных сотрудников бизнеса (порядок стабильный, по имени)
	ListActive(ctx context.Context, businessID uuid.UUID) ([]*domain.Staff, error)
}

// ProcedureRepository интерфейс репозитория процедур
type ProcedureRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Procedure, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	// GetByStaffAndRange получает снапшот событий сотрудника, пересекающихся с [from, to)
	GetByStaffAndRange(ctx context.Context, staffID uuid.UUID, from, to time.Time, includeCancelled bool) ([]*domain.Event, error)
}

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.CalendarSettings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
