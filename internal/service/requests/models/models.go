package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/domain"
)

// Response модели

// OfferResponse предложенный клиенту слот
type OfferResponse struct {
	StaffID   uuid.UUID `json:"staffId"`
	StaffName string    `json:"staffName"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
}

// RequestResponse ответ с данными заявки на бронирование
type RequestResponse struct {
	ID            uuid.UUID       `json:"id"`
	BusinessID    uuid.UUID       `json:"businessId"`
	ClientPhone   string          `json:"clientPhone"`
	ClientName    *string         `json:"clientName,omitempty"`
	ProcedureID   uuid.UUID       `json:"procedureId"`
	Offers        []OfferResponse `json:"offers"`
	ChosenStaffID *uuid.UUID      `json:"chosenStaffId,omitempty"`
	ChosenStartAt *time.Time      `json:"chosenStartAt,omitempty"`
	ChosenEndAt   *time.Time      `json:"chosenEndAt,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RequestListResponse ответ со списком заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.BookingRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	offers := make([]OfferResponse, 0, len(r.Offers))
	for _, o := range r.Offers {
		offers = append(offers, OfferResponse{
			StaffID:   o.StaffID,
			StaffName: o.StaffName,
			StartAt:   o.StartAt,
			EndAt:     o.EndAt,
		})
	}

	return &RequestResponse{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		ClientPhone:   r.ClientPhone,
		ClientName:    r.ClientName,
		ProcedureID:   r.ProcedureID,
		Offers:        offers,
		ChosenStaffID: r.ChosenStaffID,
		ChosenStartAt: r.ChosenStartAt,
		ChosenEndAt:   r.ChosenEndAt,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.BookingRequest) *RequestListResponse {
	resp := &RequestListResponse{
		Requests: make([]RequestResponse, 0, len(requests)),
	}

	for _, r := range requests {
		resp.Requests = append(resp.Requests, *FromDomainRequest(r))
	}

	return resp
}
