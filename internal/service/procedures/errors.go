package procedures

import "errors"

var (
	// ErrProcedureNotFound возвращается, когда процедура не найдена
	ErrProcedureNotFound = errors.New("procedure not found")

	// ErrStaffNotFound возвращается, когда назначаемый сотрудник не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
