package expire_requests

import "errors"

var (
	// ErrInternal - внутренняя ошибка при экспирации заявок
	ErrInternal = errors.New("expire requests: internal error")
	// ErrInvalidRequest - некорректные параметры запроса
	ErrInvalidRequest = errors.New("expire requests: invalid request")
)
