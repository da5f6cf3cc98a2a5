package reject_request

import "errors"

var (
	// ErrInternal - внутренняя ошибка при отклонении заявки
	ErrInternal = errors.New("reject request: internal error")
	// ErrInvalidRequest - некорректные параметры запроса
	ErrInvalidRequest = errors.New("reject request: invalid request")
	// ErrRequestNotFound - заявка не найдена или принадлежит другому бизнесу
	ErrRequestNotFound = errors.New("reject request: request not found")
	// ErrInvalidRequestState - заявка не в статусе awaiting_approval
	ErrInvalidRequestState = errors.New("reject request: request is not awaiting approval")
)
