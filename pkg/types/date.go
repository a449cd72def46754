package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты (YYYY-MM-DD)
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateFormat возвращается при некорректном формате даты
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrUnsupportedDateSource возвращается, когда значение из БД нельзя преобразовать в дату
	ErrUnsupportedDateSource = errors.New("unsupported date source")
)

// Date календарный день в UTC
// Время внутри всегда обнулено, поэтому сравнение дат не зависит от часового пояса источника
type Date struct {
	t time.Time
}

// NewDate создает дату из года, месяца и дня
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf приводит time.Time к календарному дню
// День берется в часовом поясе исходного значения, затем фиксируется в UTC
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return Date{t: t}, nil
}

// MustParseDate парсит дату и паникует при ошибке (для тестов и констант)
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time возвращает полночь дня в UTC
func (d Date) Time() time.Time {
	return d.t
}

// IsZero проверяет, что дата не задана
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before проверяет, что d строго раньше other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After проверяет, что d строго позже other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal проверяет равенство дат
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// DaysUntil возвращает количество дней от d до other (может быть отрицательным)
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON сериализует дату как строку YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON принимает строку YYYY-MM-DD или RFC3339
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	*d = DateOf(t.UTC())
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan реализует sql.Scanner
// lib/pq отдает колонки DATE как time.Time, но строки и []byte тоже принимаются
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v.UTC())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedDateSource, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		if parsed, err := ParseDate(s[:len(DateLayout)]); err == nil {
			*d = parsed
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
}
