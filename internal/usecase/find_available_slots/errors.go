package find_available_slots

import "errors"

var (
	// ErrInternal - внутренняя ошибка при подборе слотов
	ErrInternal = errors.New("find available slots: internal error")
	// ErrInvalidRequest - некорректные параметры запроса
	ErrInvalidRequest = errors.New("find available slots: invalid request")
)
