package create_event

import "errors"

var (
	// ErrInternal - внутренняя ошибка при создании события
	ErrInternal = errors.New("create event: internal error")
	// ErrInvalidRequest - некорректные параметры запроса
	ErrInvalidRequest = errors.New("create event: invalid request")
	// ErrStaffNotFound - сотрудник не найден или не принадлежит бизнесу
	ErrStaffNotFound = errors.New("create event: staff not found")
	// ErrProcedureNotFound - процедура не найдена или не принадлежит бизнесу
	ErrProcedureNotFound = errors.New("create event: procedure not found")
	// ErrSlotNotAvailable - интервал пересекается с существующим событием
	ErrSlotNotAvailable = errors.New("create event: slot not available")
)
