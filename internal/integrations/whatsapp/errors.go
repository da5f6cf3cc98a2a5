package whatsapp

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Graph API
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")

	// ErrSendFailed возвращается, когда Graph API отклонил отправку сообщения
	ErrSendFailed = errors.New("whatsapp client: failed to send message")
)
