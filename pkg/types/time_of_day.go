package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time of day format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда часы или минуты вне допустимого диапазона
	ErrTimeOutOfRange = errors.New("time of day out of range")
)

// TimeOfDay время суток в минутах от полуночи (0-1439)
// Вся интервальная арифметика выполняется над целыми минутами,
// строковое представление "HH:MM" используется только на границах (JSON, SQL, HTTP)
type TimeOfDay int

// NewTimeOfDay создает TimeOfDay из часов и минут
func NewTimeOfDay(hours, minutes int) (TimeOfDay, error) {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOutOfRange, hours, minutes)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// MustTimeOfDay разбирает строку "HH:MM" и паникует при ошибке (для тестов и констант)
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTime извлекает время суток из time.Time (секунды отбрасываются)
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay разбирает строку "HH:MM" (допускается "HH:MM:SS" из PostgreSQL TIME)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return NewTimeOfDay(hours, minutes)
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// AddMinutes возвращает время, сдвинутое на n минут
// Результат может выйти за пределы суток: это нужно для проверки
// "слот + длительность <= закрытие", поэтому ограничение не накладывается
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	return t + TimeOfDay(n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// Validate проверяет, что значение находится в пределах суток
func (t TimeOfDay) Validate() error {
	if t < 0 || t >= MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, int(t))
	}
	return nil
}

// String форматирует время как "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On возвращает момент времени на указанную календарную дату в заданной локации
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, loc)
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает строку "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan реализует sql.Scanner для чтения колонки TIME
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = FromTime(v)
	case nil:
		*t = 0
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}
	return nil
}
