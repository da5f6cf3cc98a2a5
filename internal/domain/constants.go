package domain

// Default calendar settings values
const (
	// DefaultSlotStepMinutes = 0 означает один кандидат на рабочий интервал
	// (слот начинается в начале интервала), без плотной сетки
	DefaultSlotStepMinutes   = 0
	DefaultHorizonDays       = 7
	DefaultMaxSlots          = 10
	DefaultRequestTTLMinutes = 1440 // 24 часа
	DefaultTimezone          = "UTC"
)

// Business validation constants
const (
	// MinProcedureDurationMinutes минимальная гранулярность длительности процедуры
	MinProcedureDurationMinutes = 15
	MaxProcedureDurationMinutes = 480 // 8 часов

	MinHorizonDays = 1
	MaxHorizonDays = 60

	MinMaxSlots = 1
	MaxMaxSlots = 50

	MinSlotStepMinutes = 0
	MaxSlotStepMinutes = 240

	MinRequestTTLMinutes = 15
	MaxRequestTTLMinutes = 10080 // неделя

	MaxNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveEventStatuses статусы событий, не занимающих время сотрудника
// Используются при проверке пересечений
var InactiveEventStatuses = []EventStatus{
	EventStatusCancelled,
}

// ActiveEventStatuses статусы событий, занимающих время сотрудника
var ActiveEventStatuses = []EventStatus{
	EventStatusConfirmed,
	EventStatusPending,
	EventStatusCompleted,
}

// OpenRequestStatuses нетерминальные статусы заявок на бронирование
var OpenRequestStatuses = []RequestStatus{
	RequestStatusPendingSelection,
	RequestStatusAwaitingApproval,
}
