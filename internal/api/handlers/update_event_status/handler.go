package update_event_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/service/events"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "событие не найдено"
	msgInvalidStatus      = "недопустимый статус события"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/businesses/{businessId}/events/{eventId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/status - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	eventID, err := uuid.Parse(vars["eventId"])
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/status - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), businessID, eventID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/status - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrInvalidStatus):
			h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/status - Invalid status %q: event_id=%s",
				req.Status, eventID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /businesses/{id}/events/{eventId}/status - Failed to update status: event_id=%s, error=%v",
				eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /businesses/{id}/events/{eventId}/status - Status updated successfully: event_id=%s, status=%s",
		eventID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
