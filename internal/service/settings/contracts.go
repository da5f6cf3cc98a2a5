package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.CalendarSettings, error)
	Upsert(ctx context.Context, settings *domain.CalendarSettings) (*domain.CalendarSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
