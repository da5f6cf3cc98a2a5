package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM (24-часовой)
const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время в формате HH:MM без даты
// Используется для рабочих расписаний и настроек, где важно только время суток
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// String возвращает строковое представление времени
func (ts TimeString) String() string {
	return string(ts)
}

// Parse парсит TimeString в time.Time (дата будет нулевой)
func (ts TimeString) Parse() (time.Time, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t, nil
}

// AddMinutes возвращает новый TimeString со сдвигом на minutes минут вперёд
// Переход через полночь не поддерживается - возвращается ошибка
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := ts.Parse()
	if err != nil {
		return "", err
	}

	shifted := t.Add(time.Duration(minutes) * time.Minute)

	// Рабочий день не может перейти через полночь
	if shifted.Day() != t.Day() {
		return "", fmt.Errorf("%w: %s + %d minutes crosses midnight", ErrInvalidTimeString, ts, minutes)
	}

	return NewTimeString(shifted), nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// MinutesFromMidnight возвращает количество минут с начала суток
func (ts TimeString) MinutesFromMidnight() (int, error) {
	t, err := ts.Parse()
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// OnDate совмещает время суток с датой date в указанной таймзоне
func (ts TimeString) OnDate(date time.Time, loc *time.Location) (time.Time, error) {
	t, err := ts.Parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (ts *TimeString) Scan(value interface{}) error {
	if value == nil {
		*ts = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*ts = TimeString(v)
	case []byte:
		*ts = TimeString(v)
	case time.Time:
		*ts = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, value)
	}

	// PostgreSQL может вернуть время с секундами (HH:MM:SS) - обрезаем до HH:MM
	if len(*ts) > 5 {
		*ts = (*ts)[:5]
	}

	return nil
}

// MarshalJSON сериализует TimeString в JSON строку
func (ts TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(ts))
}

// UnmarshalJSON десериализует TimeString из JSON с валидацией формата
func (ts *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}

	*ts = parsed
	return nil
}
