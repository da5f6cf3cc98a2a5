package create_procedure

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
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/businesses/{businessId}/procedures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/procedures - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req models.CreateProcedureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/procedures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, procedures.ErrStaffNotFound):
			h.logger.Warn("POST /businesses/{id}/procedures - Staff not found: %v", err)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, procedures.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/procedures - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{id}/procedures - Failed to create procedure: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/procedures - Procedure created successfully: procedure_id=%s, business_id=%s",
		result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
