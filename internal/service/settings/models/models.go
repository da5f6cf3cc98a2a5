package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек календаря
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	SlotStepMinutes   *int    `json:"slotStepMinutes,omitempty"`
	HorizonDays       *int    `json:"horizonDays,omitempty"`
	MaxSlots          *int    `json:"maxSlots,omitempty"`
	RequestTTLMinutes *int    `json:"requestTtlMinutes,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
}

// Response модели

// SettingsResponse ответ с настройками календаря
type SettingsResponse struct {
	BusinessID        uuid.UUID `json:"businessId"`
	SlotStepMinutes   int       `json:"slotStepMinutes"`
	HorizonDays       int       `json:"horizonDays"`
	MaxSlots          int       `json:"maxSlots"`
	RequestTTLMinutes int       `json:"requestTtlMinutes"`
	Timezone          string    `json:"timezone"`
	// IsDefault - true, когда бизнес ещё не сохранял собственные настройки
	IsDefault bool       `json:"isDefault"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.CalendarSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		BusinessID:        s.BusinessID,
		SlotStepMinutes:   s.SlotStepMinutes,
		HorizonDays:       s.HorizonDays,
		MaxSlots:          s.MaxSlots,
		RequestTTLMinutes: s.RequestTTLMinutes,
		Timezone:          s.Timezone,
		IsDefault:         isDefault,
	}

	if !isDefault {
		resp.CreatedAt = &s.CreatedAt
		resp.UpdatedAt = &s.UpdatedAt
	}

	return resp
}
