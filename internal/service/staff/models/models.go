package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Request модели

// CreateStaffRequest запрос на создание сотрудника
type CreateStaffRequest struct {
	BusinessID uuid.UUID           `json:"businessId"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Phone      *string             `json:"phone,omitempty"`
	Role       string              `json:"role"`
	Schedule   domain.WorkSchedule `json:"schedule"`
	AvatarURL  *string             `json:"avatarUrl,omitempty"`
}

// UpdateStaffRequest запрос на обновление сотрудника
// Все поля опциональны - обновляются только переданные значения
type UpdateStaffRequest struct {
	Name      *string              `json:"name,omitempty"`
	Email     *string              `json:"email,omitempty"`
	Phone     *string              `json:"phone,omitempty"`
	Role      *string              `json:"role,omitempty"`
	Schedule  *domain.WorkSchedule `json:"schedule,omitempty"`
	AvatarURL *string              `json:"avatarUrl,omitempty"`
	IsActive  *bool                `json:"isActive,omitempty"`
}

// Response модели

// StaffResponse ответ с данными сотрудника
type StaffResponse struct {
	ID         uuid.UUID           `json:"id"`
	BusinessID uuid.UUID           `json:"businessId"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Phone      *string             `json:"phone,omitempty"`
	Role       string              `json:"role"`
	IsActive   bool                `json:"isActive"`
	Schedule   domain.WorkSchedule `json:"schedule"`
	AvatarURL  *string             `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// StaffListResponse ответ со списком сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// Методы конвертации

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}

	return &StaffResponse{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Role:       s.Role,
		IsActive:   s.IsActive,
		Schedule:   s.Schedule,
		AvatarURL:  s.AvatarURL,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(staff []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{
		Staff: make([]StaffResponse, 0, len(staff)),
	}

	for _, s := range staff {
		resp.Staff = append(resp.Staff, *FromDomainStaff(s))
	}

	return resp
}
