package expire_requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
)

// Request запрос на экспирацию устаревших заявок бизнеса
type Request struct {
	BusinessID uuid.UUID
}

// Response результат экспирации
type Response struct {
	ExpiredCount int64 `json:"expired_count"`
}

// UseCase use case для перевода устаревших открытых заявок в expired.
// Вызывается администратором или по расписанию
type UseCase struct {
	requestRepo  RequestRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case экспирации заявок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExpireRequests: business=%s", req.BusinessID)

	// 1. Валидация входных данных
	if req.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%w: business_id is required", ErrInvalidRequest)
	}

	// 2. Получаем TTL заявок из настроек календаря
	settings, err := uc.settingsRepo.GetByBusiness(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("ExpireRequests: failed to get settings for business=%s: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get calendar settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultCalendarSettings(req.BusinessID)
	}

	// 3. Переводим открытые заявки старше cutoff в expired
	cutoff := uc.timeProvider.Now().Add(-time.Duration(settings.RequestTTLMinutes) * time.Minute)

	count, err := uc.requestRepo.ExpireOlderThan(ctx, req.BusinessID, cutoff)
	if err != nil {
		uc.logger.Error("ExpireRequests: failed to expire requests for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to expire requests: %v", ErrInternal, err)
	}

	uc.logger.Info("ExpireRequests: expired %d requests for business=%s", count, req.BusinessID)

	return &Response{ExpiredCount: count}, nil
}
