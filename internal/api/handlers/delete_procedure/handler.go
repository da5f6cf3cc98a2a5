package delete_procedure

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/service/procedures"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidProcedureID = "некорректный ID процедуры"
	msgNotFound           = "процедура не найдена"
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

// Handle DELETE /api/v1/businesses/{businessId}/procedures/{procedureId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/procedures/{procedureId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	procedureID, err := uuid.Parse(vars["procedureId"])
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/procedures/{procedureId} - Invalid procedure ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProcedureID)
		return
	}

	if err := h.service.Delete(r.Context(), businessID, procedureID); err != nil {
		switch {
		case errors.Is(err, procedures.ErrProcedureNotFound):
			h.logger.Warn("DELETE /businesses/{id}/procedures/{procedureId} - Procedure not found: procedure_id=%s",
				procedureID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /businesses/{id}/procedures/{procedureId} - Failed to delete procedure: procedure_id=%s, error=%v",
				procedureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/procedures/{procedureId} - Procedure deactivated successfully: procedure_id=%s",
		procedureID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
