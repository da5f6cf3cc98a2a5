package expire_requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	// ExpireOlderThan переводит в expired открытые заявки, созданные раньше cutoff
	ExpireOlderThan(ctx context.Context, businessID uuid.UUID, cutoff time.Time) (int64, error)
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
