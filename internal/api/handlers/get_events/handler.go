package get_events

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/service/events"
	"github.com/taimeline/taimeline-service/internal/service/events/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgInvalidRange      = "некорректный период, ожидается RFC3339"
	msgInvalidInput      = "некорректные параметры запроса"
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

// Handle GET /api/v1/businesses/{businessId}/events
// Query параметры: staffId, from, to (RFC3339), includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/events - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	req := &models.ListEventsRequest{
		BusinessID:       businessID,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}

	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		staffID, err := uuid.Parse(staffIDStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/events - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/events - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		req.RangeStart = &from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/events - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		req.RangeEnd = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/events - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /businesses/{id}/events - Failed to list events: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/events - Events retrieved successfully: business_id=%s, count=%d",
		businessID, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}
