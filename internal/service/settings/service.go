package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
	settingsRepo "github.com/taimeline/taimeline-service/internal/infra/storage/settings"
	"github.com/taimeline/taimeline-service/internal/service/settings/models"
)

// Service сервис для работы с настройками календаря
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки календаря бизнеса
// Если бизнес не сохранял собственные настройки, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, businessID uuid.UUID) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%s", businessID)

	if businessID == uuid.Nil {
		s.logger.Warn("Get: missing business id")
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: using default settings for business=%s", businessID)
			return models.FromDomainSettings(domain.DefaultCalendarSettings(businessID), true), nil
		}
		s.logger.Error("Get: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched settings for business=%s", businessID)
	return models.FromDomainSettings(settings, false), nil
}

// Update обновляет настройки календаря бизнеса
// Незаданные поля берутся из текущих настроек (или значений по умолчанию)
func (s *Service) Update(ctx context.Context, businessID uuid.UUID, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for business=%s", businessID)

	if businessID == uuid.Nil {
		s.logger.Warn("Update: missing business id")
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error for business=%s: %v", businessID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		settings = domain.DefaultCalendarSettings(businessID)
	}

	if req.SlotStepMinutes != nil {
		settings.SlotStepMinutes = *req.SlotStepMinutes
	}
	if req.HorizonDays != nil {
		settings.HorizonDays = *req.HorizonDays
	}
	if req.MaxSlots != nil {
		settings.MaxSlots = *req.MaxSlots
	}
	if req.RequestTTLMinutes != nil {
		settings.RequestTTLMinutes = *req.RequestTTLMinutes
	}
	if req.Timezone != nil {
		settings.Timezone = *req.Timezone
	}

	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed for business=%s: %v", businessID, err)
		return nil, err
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: failed to upsert settings for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for business=%s", businessID)
	return models.FromDomainSettings(updated, false), nil
}

// validateSettings проверяет границы значений настроек
func validateSettings(settings *domain.CalendarSettings) error {
	if settings.SlotStepMinutes < domain.MinSlotStepMinutes || settings.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if settings.HorizonDays < domain.MinHorizonDays || settings.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be between %d and %d",
			ErrInvalidInput, domain.MinHorizonDays, domain.MaxHorizonDays)
	}
	if settings.MaxSlots < domain.MinMaxSlots || settings.MaxSlots > domain.MaxMaxSlots {
		return fmt.Errorf("%w: maxSlots must be between %d and %d",
			ErrInvalidInput, domain.MinMaxSlots, domain.MaxMaxSlots)
	}
	if settings.RequestTTLMinutes < domain.MinRequestTTLMinutes || settings.RequestTTLMinutes > domain.MaxRequestTTLMinutes {
		return fmt.Errorf("%w: requestTtlMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinRequestTTLMinutes, domain.MaxRequestTTLMinutes)
	}
	if _, err := time.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, settings.Timezone)
	}
	return nil
}
