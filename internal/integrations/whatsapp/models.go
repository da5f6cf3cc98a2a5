package whatsapp

// Config конфигурация транспорта Meta Business API
// Передается явным объектом при конструировании клиента -
// движок бронирования доступа к ней не имеет
type Config struct {
	GraphAPIBaseURL    string
	PhoneNumberID      string
	AccessToken        string
	WebhookVerifyToken string
	BusinessPhone      string
}

// sendMessageRequest тело запроса отправки текстового сообщения
type sendMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             messageText `json:"text"`
}

type messageText struct {
	Body string `json:"body"`
}

// WebhookPayload входящий webhook Meta Business API
type WebhookPayload struct {
	Entry []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	Metadata WebhookMetadata  `json:"metadata"`
	Contacts []WebhookContact `json:"contacts"`
	Messages []InboundMessage `json:"messages"`
}

// WebhookContact профиль отправителя
type WebhookContact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

type WebhookMetadata struct {
	PhoneNumberID      string `json:"phone_number_id"`
	DisplayPhoneNumber string `json:"display_phone_number"`
}

// InboundMessage входящее сообщение клиента
type InboundMessage struct {
	From string       `json:"from"`
	ID   string       `json:"id"`
	Text *MessageText `json:"text,omitempty"`
}

type MessageText struct {
	Body string `json:"body"`
}

// ErrorResponse модель ошибки Graph API
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}
