package handle_inbound_message

import "github.com/google/uuid"

// Действия, предпринятые ботом в ответ на сообщение
const (
	ActionWelcome          = "welcome"
	ActionSlotsOffered     = "slots_offered"
	ActionNoSlots          = "no_slots"
	ActionSlotSelected     = "slot_selected"
	ActionInvalidSelection = "invalid_selection"
	ActionAwaitingApproval = "awaiting_approval"
	ActionCancelInfo       = "cancel_info"
	ActionFallback         = "fallback"
)

// Request входящее сообщение из мессенджера
type Request struct {
	BusinessID uuid.UUID
	// From - телефон клиента, он же идентификатор переписки
	From        string
	ProfileName string
	Text        string
}

// Response результат обработки входящего сообщения
type Response struct {
	// Action - что бот сделал с сообщением
	Action string `json:"action"`
	// Reply - текст, отправленный клиенту
	Reply     string     `json:"reply"`
	RequestID *uuid.UUID `json:"request_id,omitempty"`
}
