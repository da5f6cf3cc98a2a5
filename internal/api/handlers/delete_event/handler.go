package delete_event

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/service/events"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidEventID    = "некорректный ID события"
	msgNotFound          = "событие не найдено"
)

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

// Handle DELETE /api/v1/businesses/{businessId}/events/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/events/{eventId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	eventID, err := uuid.Parse(vars["eventId"])
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/events/{eventId} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	if err := h.service.Delete(r.Context(), businessID, eventID); err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("DELETE /businesses/{id}/events/{eventId} - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /businesses/{id}/events/{eventId} - Failed to delete event: event_id=%s, error=%v",
				eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/events/{eventId} - Event deleted successfully: event_id=%s", eventID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
