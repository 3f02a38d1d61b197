package util

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day without a time component, serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

const DateLayout = "2006-01-02"

const clockLayout = "15:04"

var ErrInvalidClock = errors.New("invalid time of day, expected HH:MM")

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// Today returns the current day as seen in loc.
func Today(loc *time.Location) Date {
	now := time.Now().In(loc)
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

func (d Date) Before(other Date) bool {
	return d.String() < other.String()
}

func (d Date) Ptr() *Date {
	return &d
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan type %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ValidateClock accepts "" or a 24h HH:MM string.
func ValidateClock(clock string) error {
	if clock == "" {
		return nil
	}
	if _, err := time.Parse(clockLayout, clock); err != nil {
		return ErrInvalidClock
	}
	return nil
}

// At combines a day and an HH:MM clock into an instant in loc.
func At(d Date, clock string, loc *time.Location) (*time.Time, error) {
	if d.IsZero() {
		return nil, nil
	}
	hour, minute := 0, 0
	if clock != "" {
		c, err := time.Parse(clockLayout, clock)
		if err != nil {
			return nil, ErrInvalidClock
		}
		hour, minute = c.Hour(), c.Minute()
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc)
	return &t, nil
}
