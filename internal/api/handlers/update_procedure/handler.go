package update_procedure

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/service/procedures"
	"github.com/taimeline/taimeline-service/internal/service/procedures/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidProcedureID = "некорректный ID процедуры"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "процедура не найдена"
	msgInvalidInput       = "некорректные данные процедуры"
	msgStaffNotFound      = "назначенный сотрудник не найден"
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

// Handle PUT /api/v1/businesses/{businessId}/procedures/{procedureId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/procedures/{procedureId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	procedureID, err := uuid.Parse(vars["procedureId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/procedures/{procedureId} - Invalid procedure ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProcedureID)
		return
	}

	var req models.UpdateProcedureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/procedures/{procedureId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), businessID, procedureID, &req)
	if err != nil {
		switch {
		case errors.Is(err, procedures.ErrProcedureNotFound):
			h.logger.Warn("PUT /businesses/{id}/procedures/{procedureId} - Procedure not found: procedure_id=%s",
				procedureID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, procedures.ErrStaffNotFound):
			h.logger.Warn("PUT /businesses/{id}/procedures/{procedureId} - Staff not found: %v", err)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, procedures.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/procedures/{procedureId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /businesses/{id}/procedures/{procedureId} - Failed to update procedure: procedure_id=%s, error=%v",
				procedureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/procedures/{procedureId} - Procedure updated successfully: procedure_id=%s",
		procedureID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
