package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalendarSettings represents the per-business scheduling configuration
type CalendarSettings struct {
	ID         uuid.UUID
	BusinessID uuid.UUID

	// SlotStepMinutes шаг генерации кандидатов внутри рабочего интервала
	// 0 = один кандидат на интервал (в начале интервала)
	SlotStepMinutes int

	// HorizonDays горизонт поиска свободных слотов в днях
	HorizonDays int

	// MaxSlots максимальное количество слотов в ответе резолвера
	MaxSlots int

	// RequestTTLMinutes время жизни открытой заявки до перевода в expired
	RequestTTLMinutes int

	// Timezone таймзона бизнеса (IANA, например "America/Sao_Paulo")
	Timezone string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCalendarSettings возвращает настройки по умолчанию
// Используются, когда бизнес не настроил собственные
func DefaultCalendarSettings(businessID uuid.UUID) *CalendarSettings {
	return &CalendarSettings{
		BusinessID:        businessID,
		SlotStepMinutes:   DefaultSlotStepMinutes,
		HorizonDays:       DefaultHorizonDays,
		MaxSlots:          DefaultMaxSlots,
		RequestTTLMinutes: DefaultRequestTTLMinutes,
		Timezone:          DefaultTimezone,
	}
}

// Location возвращает *time.Location для таймзоны бизнеса
// При некорректной таймзоне возвращается UTC
func (s *CalendarSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesFixedStep возвращает true, если включена плотная сетка кандидатов
func (s *CalendarSettings) UsesFixedStep() bool {
	return s.SlotStepMinutes > 0
}
