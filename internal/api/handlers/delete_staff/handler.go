package delete_staff

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/service/staff"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgNotFound          = "сотрудник не найден"
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

// Handle DELETE /api/v1/businesses/{businessId}/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/staff/{staffId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	staffID, err := uuid.Parse(vars["staffId"])
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/staff/{staffId} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	if err := h.service.Delete(r.Context(), businessID, staffID); err != nil {
		switch {
		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("DELETE /businesses/{id}/staff/{staffId} - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /businesses/{id}/staff/{staffId} - Failed to delete staff: staff_id=%s, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/staff/{staffId} - Staff deactivated successfully: staff_id=%s", staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
