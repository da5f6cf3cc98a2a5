package handle_inbound_message

import "errors"

var (
	// ErrInternal - внутренняя ошибка при обработке входящего сообщения
	ErrInternal = errors.New("handle inbound message: internal error")
	// ErrInvalidRequest - некорректные параметры запроса
	ErrInvalidRequest = errors.New("handle inbound message: invalid request")
)
