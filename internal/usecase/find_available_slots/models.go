package find_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Request запрос на подбор доступных слотов
type Request struct {
	BusinessID  uuid.UUID
	ProcedureID uuid.UUID
	// StartDate - первый день горизонта поиска. Нулевое значение означает "с сегодняшнего дня".
	StartDate time.Time
	// HorizonDays - глубина поиска в днях. 0 означает значение из настроек календаря.
	HorizonDays int
	// MaxResults - максимум слотов в ответе. 0 означает значение из настроек календаря.
	MaxResults int
}

// Response результат подбора доступных слотов
type Response struct {
	BusinessID  uuid.UUID              `json:"business_id"`
	ProcedureID uuid.UUID              `json:"procedure_id"`
	Slots       []domain.AvailableSlot `json:"slots"`
}
