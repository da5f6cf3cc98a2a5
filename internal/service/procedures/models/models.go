package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Request модели

// CreateProcedureRequest запрос на создание процедуры
type CreateProcedureRequest struct {
	BusinessID      uuid.UUID   `json:"businessId"`
	Name            string      `json:"name"`
	Description     *string     `json:"description,omitempty"`
	DurationMinutes int         `json:"durationMinutes"`
	Price           *float64    `json:"price,omitempty"`
	Color           string      `json:"color,omitempty"`
	StaffIDs        []uuid.UUID `json:"staffIds"`
}

// UpdateProcedureRequest запрос на обновление процедуры
// Все поля опциональны - обновляются только переданные значения
type UpdateProcedureRequest struct {
	Name            *string      `json:"name,omitempty"`
	Description     *string      `json:"description,omitempty"`
	DurationMinutes *int         `json:"durationMinutes,omitempty"`
	Price           *float64     `json:"price,omitempty"`
	Color           *string      `json:"color,omitempty"`
	StaffIDs        *[]uuid.UUID `json:"staffIds,omitempty"`
	IsActive        *bool        `json:"isActive,omitempty"`
}

// Response модели

// ProcedureResponse ответ с данными процедуры
type ProcedureResponse struct {
	ID              uuid.UUID   `json:"id"`
	BusinessID      uuid.UUID   `json:"businessId"`
	Name            string      `json:"name"`
	Description     *string     `json:"description,omitempty"`
	DurationMinutes int         `json:"durationMinutes"`
	Price           *float64    `json:"price,omitempty"`
	Color           string      `json:"color,omitempty"`
	IsActive        bool        `json:"isActive"`
	StaffIDs        []uuid.UUID `json:"staffIds"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ProcedureListResponse ответ со списком процедур
type ProcedureListResponse struct {
	Procedures []ProcedureResponse `json:"procedures"`
}

// Методы конвертации

// FromDomainProcedure конвертирует domain модель в DTO
func FromDomainProcedure(p *domain.Procedure) *ProcedureResponse {
	if p == nil {
		return nil
	}

	return &ProcedureResponse{
		ID:              p.ID,
		BusinessID:      p.BusinessID,
		Name:            p.Name,
		Description:     p.Description,
		DurationMinutes: p.DurationMinutes,
		Price:           p.Price,
		Color:           p.Color,
		IsActive:        p.IsActive,
		StaffIDs:        p.StaffIDs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainProcedureList конвертирует список domain моделей в DTO
func FromDomainProcedureList(procedures []*domain.Procedure) *ProcedureListResponse {
	resp := &ProcedureListResponse{
		Procedures: make([]ProcedureResponse, 0, len(procedures)),
	}

	for _, p := range procedures {
		resp.Procedures = append(resp.Procedures, *FromDomainProcedure(p))
	}

	return resp
}
