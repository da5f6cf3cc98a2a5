package expire_requests

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	expireRequests "github.com/taimeline/taimeline-service/internal/usecase/expire_requests"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
)

type Handler struct {
	useCase ExpireRequestsUseCase
	logger  Logger
}

func NewHandler(useCase ExpireRequestsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/requests/expire
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/requests/expire - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &expireRequests.Request{BusinessID: businessID})
	if err != nil {
		h.logger.Error("POST /businesses/{id}/requests/expire - Failed to expire requests: business_id=%s, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /businesses/{id}/requests/expire - Expired %d requests: business_id=%s",
		result.ExpiredCount, businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
