package update_staff

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
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "сотрудник не найден"
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

// Handle PUT /api/v1/businesses/{businessId}/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/staff/{staffId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	staffID, err := uuid.Parse(vars["staffId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/staff/{staffId} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/staff/{staffId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), businessID, staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("PUT /businesses/{id}/staff/{staffId} - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, staff.ErrInvalidSchedule):
			h.logger.Warn("PUT /businesses/{id}/staff/{staffId} - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/staff/{staffId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /businesses/{id}/staff/{staffId} - Failed to update staff: staff_id=%s, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/staff/{staffId} - Staff updated successfully: staff_id=%s", staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
