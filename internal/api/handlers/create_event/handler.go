package create_event

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	createEvent "github.com/taimeline/taimeline-service/internal/usecase/create_event"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры события"
	msgStaffNotFound      = "сотрудник не найден"
	msgProcedureNotFound  = "процедура не найдена"
	msgSlotNotAvailable   = "выбранный интервал пересекается с существующим событием"
)

type Handler struct {
	useCase CreateEventUseCase
	logger  Logger
}

func NewHandler(useCase CreateEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/events - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, createEvent.ErrInvalidRequest):
			h.logger.Warn("POST /businesses/{id}/events - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createEvent.ErrStaffNotFound):
			h.logger.Warn("POST /businesses/{id}/events - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createEvent.ErrProcedureNotFound):
			h.logger.Warn("POST /businesses/{id}/events - Procedure not found: procedure_id=%v", req.ProcedureID)
			handlers.RespondNotFound(w, msgProcedureNotFound)

		case errors.Is(err, createEvent.ErrSlotNotAvailable):
			h.logger.Warn("POST /businesses/{id}/events - Slot not available: staff_id=%s", req.StaffID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /businesses/{id}/events - Failed to create event: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/events - Event created successfully: event_id=%s, business_id=%s",
		result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
