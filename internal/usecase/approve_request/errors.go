package approve_request

import "errors"

var (
	// ErrInternal - внутренняя ошибка при одобрении заявки
	ErrInternal = errors.New("approve request: internal error")
	// ErrInvalidRequest - некорректные параметры запроса
	ErrInvalidRequest = errors.New("approve request: invalid request")
	// ErrRequestNotFound - заявка не найдена или принадлежит другому бизнесу
	ErrRequestNotFound = errors.New("approve request: request not found")
	// ErrInvalidRequestState - заявка не в статусе awaiting_approval
	ErrInvalidRequestState = errors.New("approve request: request is not awaiting approval")
	// ErrSlotNoLongerAvailable - выбранный слот занят, заявка переведена в rejected
	ErrSlotNoLongerAvailable = errors.New("approve request: chosen slot is no longer available")
)
