package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/domain"
	findSlots "github.com/taimeline/taimeline-service/internal/usecase/find_available_slots"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidProcedureID = "некорректный ID процедуры"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidNumber      = "некорректное числовое значение параметра"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	useCase FindAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots
// Query параметры: procedureId (обязательный), date (YYYY-MM-DD), horizonDays, maxResults
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	procedureID, err := uuid.Parse(r.URL.Query().Get("procedureId"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid procedure ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProcedureID)
		return
	}

	req := &findSlots.Request{
		BusinessID:  businessID,
		ProcedureID: procedureID,
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = date
	}

	if daysStr := r.URL.Query().Get("horizonDays"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid horizonDays: %v", err)
			handlers.RespondBadRequest(w, msgInvalidNumber)
			return
		}
		req.HorizonDays = days
	}

	if maxStr := r.URL.Query().Get("maxResults"); maxStr != "" {
		max, err := strconv.Atoi(maxStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid maxResults: %v", err)
			handlers.RespondBadRequest(w, msgInvalidNumber)
			return
		}
		req.MaxResults = max
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, findSlots.ErrInvalidRequest):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed to find slots: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-slots - Found %d slots: business_id=%s, procedure_id=%s",
		len(result.Slots), businessID, procedureID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
