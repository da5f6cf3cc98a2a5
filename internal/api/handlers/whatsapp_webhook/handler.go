package whatsapp_webhook

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/taimeline/taimeline-service/internal/api/handlers"
	"github.com/taimeline/taimeline-service/internal/integrations/whatsapp"
	handleInbound "github.com/taimeline/taimeline-service/internal/usecase/handle_inbound_message"
)

const (
	msgVerifyFailed = "неверный verify token"
)

type Handler struct {
	useCase  HandleInboundMessageUseCase
	verifier TokenVerifier
	// businessID - бизнес, на который заведен номер WhatsApp
	businessID uuid.UUID
	logger     Logger
}

func NewHandler(useCase HandleInboundMessageUseCase, verifier TokenVerifier, businessID uuid.UUID, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		verifier:   verifier,
		businessID: businessID,
		logger:     logger,
	}
}

// HandleVerify GET /api/v1/whatsapp/webhook
// Подтверждение подписки webhook со стороны Meta
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode != "subscribe" || token != h.verifier.VerifyToken() {
		h.logger.Warn("GET /whatsapp/webhook - Verification failed: mode=%s", mode)
		handlers.RespondForbidden(w, msgVerifyFailed)
		return
	}

	h.logger.Info("GET /whatsapp/webhook - Webhook verified")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(challenge))
}

// HandleInbound POST /api/v1/whatsapp/webhook
// Meta повторяет доставку при не-200 ответах, поэтому webhook
// всегда отвечает 200, а ошибки обработки только логируются
func (h *Handler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	var payload whatsapp.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("POST /whatsapp/webhook - Invalid payload: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			profileNames := make(map[string]string, len(change.Value.Contacts))
			for _, contact := range change.Value.Contacts {
				profileNames[contact.WaID] = contact.Profile.Name
			}

			for _, message := range change.Value.Messages {
				if message.Text == nil {
					continue
				}

				_, err := h.useCase.Execute(r.Context(), &handleInbound.Request{
					BusinessID:  h.businessID,
					From:        message.From,
					ProfileName: profileNames[message.From],
					Text:        message.Text.Body,
				})
				if err != nil {
					h.logger.Error("POST /whatsapp/webhook - Failed to handle message from %s: %v",
						message.From, err)
				}
			}
		}
	}

	w.WriteHeader(http.StatusOK)
}
