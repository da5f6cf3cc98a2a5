package cancel_event

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
	msgCannotCancel      = "событие не может быть отменено"
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

// Handle PATCH /api/v1/businesses/{businessId}/events/{eventId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/cancel - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	eventID, err := uuid.Parse(vars["eventId"])
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/cancel - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	result, err := h.service.Cancel(r.Context(), businessID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/cancel - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrCannotCancel):
			h.logger.Warn("PATCH /businesses/{id}/events/{eventId}/cancel - Cannot cancel: event_id=%s", eventID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /businesses/{id}/events/{eventId}/cancel - Failed to cancel event: event_id=%s, error=%v",
				eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /businesses/{id}/events/{eventId}/cancel - Event cancelled successfully: event_id=%s", eventID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
