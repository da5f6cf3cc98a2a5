package list_procedures

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
)

type Handler struct {
	service ProcedureService
	logger  Logger
}

func NewHandler(service ProcedureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/procedures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/procedures - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.List(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/procedures - Failed to list procedures: business_id=%s, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/procedures - Procedures retrieved successfully: business_id=%s, count=%d",
		businessID, len(result.Procedures))
	handlers.RespondJSON(w, http.StatusOK, result)
}
