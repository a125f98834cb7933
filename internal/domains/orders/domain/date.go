package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the text form used on the wire and in seed files.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must use the YYYY-MM-DD form")

// Date is a calendar day without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalises out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses the YYYY-MM-DD form.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
