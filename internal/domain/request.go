package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/pkg/types"
)

// RequestStatus represents the status of a booking request
type RequestStatus string

const (
	RequestStatusPendingSelection RequestStatus = "pending_selection"
	RequestStatusAwaitingApproval RequestStatus = "awaiting_approval"
	RequestStatusApproved         RequestStatus = "approved"
	RequestStatusRejected         RequestStatus = "rejected"
	RequestStatusExpired          RequestStatus = "expired"
)

// requestTransitions таблица допустимых переходов статусов заявки
// Терминальные статусы (approved, rejected, expired) переходов не имеют
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPendingSelection: {RequestStatusAwaitingApproval, RequestStatusExpired},
	RequestStatusAwaitingApproval: {RequestStatusApproved, RequestStatusRejected, RequestStatusExpired},
	RequestStatusApproved:         {},
	RequestStatusRejected:         {},
	RequestStatusExpired:          {},
}

// CanTransitionTo возвращает true, если переход в статус next допустим
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status admits no further transitions
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// BookingRequest represents an in-flight booking attempt originating
// from the messaging channel
// Заявка мутируется только через переходы машины состояний;
// ровно одна терминальная запись (approve) превращает заявку в Event
type BookingRequest struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	ClientPhone   string
	ClientName    *string
	ProcedureID   uuid.UUID
	RequestedDate *time.Time
	RequestedTime *types.TimeString

	// Offers - предложенные клиенту слоты, вычисленные резолвером
	Offers []AvailableSlot

	// Выбранный слот - заполняется при переходе в awaiting_approval
	ChosenStaffID *uuid.UUID
	ChosenStartAt *time.Time
	ChosenEndAt   *time.Time

	Status RequestStatus

	// ConversationID идентификатор переписки в мессенджере
	// для корреляции последующих ответов клиента
	ConversationID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen возвращает true, если заявка еще находится в работе
func (r *BookingRequest) IsOpen() bool {
	return !r.Status.IsTerminal()
}

// SelectOffer фиксирует выбранный клиентом слот по индексу (с нуля)
// Возвращает false при выходе индекса за границы списка предложений -
// статус заявки при этом не меняется
func (r *BookingRequest) SelectOffer(index int) bool {
	if index < 0 || index >= len(r.Offers) {
		return false
	}

	offer := r.Offers[index]
	r.ChosenStaffID = &offer.StaffID
	r.ChosenStartAt = &offer.StartAt
	r.ChosenEndAt = &offer.EndAt
	return true
}
