package reject_request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	rejectRequest "github.com/taimeline/taimeline-service/internal/usecase/reject_request"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidRequestID  = "некорректный ID заявки"
	msgNotFound          = "заявка не найдена"
	msgInvalidState      = "заявка не ожидает подтверждения"
)

type Handler struct {
	useCase RejectRequestUseCase
	logger  Logger
}

func NewHandler(useCase RejectRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/requests/{requestId}/reject - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	requestID, err := uuid.Parse(vars["requestId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/requests/{requestId}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectRequest.Request{
		BusinessID: businessID,
		RequestID:  requestID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectRequest.ErrRequestNotFound):
			h.logger.Warn("POST /businesses/{id}/requests/{requestId}/reject - Request not found: request_id=%s",
				requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectRequest.ErrInvalidRequestState):
			h.logger.Warn("POST /businesses/{id}/requests/{requestId}/reject - Invalid state: request_id=%s",
				requestID)
			handlers.RespondConflict(w, msgInvalidState)

		default:
			h.logger.Error("POST /businesses/{id}/requests/{requestId}/reject - Failed to reject: request_id=%s, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/requests/{requestId}/reject - Request rejected: request_id=%s", requestID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
