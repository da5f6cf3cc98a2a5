package create_staff

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/service/staff"
	"github.com/taimeline/taimeline-service/internal/service/staff/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сотрудника"
	msgInvalidSchedule    = "некорректное рабочее расписание"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/staff - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidSchedule):
			h.logger.Warn("POST /businesses/{id}/staff - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/staff - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{id}/staff - Failed to create staff: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/staff - Staff created successfully: staff_id=%s, business_id=%s",
		result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
