package approve_request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	approveRequest "github.com/taimeline/taimeline-service/internal/usecase/approve_request"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidRequestID  = "некорректный ID заявки"
	msgNotFound          = "заявка не найдена"
	msgInvalidState      = "заявка не ожидает подтверждения"
	msgSlotTaken         = "выбранный слот уже занят, заявка отклонена"
)

type Handler struct {
	useCase ApproveRequestUseCase
	logger  Logger
}

func NewHandler(useCase ApproveRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/requests/{requestId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/requests/{requestId}/approve - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	requestID, err := uuid.Parse(vars["requestId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/requests/{requestId}/approve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveRequest.Request{
		BusinessID: businessID,
		RequestID:  requestID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveRequest.ErrRequestNotFound):
			h.logger.Warn("POST /businesses/{id}/requests/{requestId}/approve - Request not found: request_id=%s",
				requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveRequest.ErrInvalidRequestState):
			h.logger.Warn("POST /businesses/{id}/requests/{requestId}/approve - Invalid state: request_id=%s",
				requestID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, approveRequest.ErrSlotNoLongerAvailable):
			// Заявка переведена в rejected, клиент уведомлён
			h.logger.Warn("POST /businesses/{id}/requests/{requestId}/approve - Slot taken: request_id=%s",
				requestID)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /businesses/{id}/requests/{requestId}/approve - Failed to approve: request_id=%s, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/requests/{requestId}/approve - Request approved: request_id=%s, event_id=%v",
		requestID, result.EventID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
