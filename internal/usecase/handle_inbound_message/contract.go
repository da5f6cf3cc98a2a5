package handle_inbound_message

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	"github.com/taimeline/taimeline-service/internal/usecase/find_available_slots"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, request *domain.BookingRequest) (*domain.BookingRequest, error)
	// GetOpenByConversation получает последнюю открытую заявку переписки
	GetOpenByConversation(ctx context.Context, businessID uuid.UUID, conversationID string) (*domain.BookingRequest, error)
	Update(ctx context.Context, request *domain.BookingRequest) error
}

// ProcedureRepository интерфейс репозитория процедур
type ProcedureRepository interface {
	ListActive(ctx context.Context, businessID uuid.UUID) ([]*domain.Procedure, error)
}

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.CalendarSettings, error)
}

// SlotFinder интерфейс резолвера доступных слотов
type SlotFinder interface {
	Execute(ctx context.Context, req *find_available_slots.Request) (*find_available_slots.Response, error)
}

// MessageSender интерфейс для отправки ответов клиенту в мессенджер
type MessageSender interface {
	SendMessage(ctx context.Context, to, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
