package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date wire format shared by the JSON API, the
// durable snapshot, and the CSV export.
const DateLayout = "2006-01-02"

// Date is a day-precision calendar date. The zero value means "no date"
// and marshals as an empty JSON string.
type Date struct {
	t time.Time
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, s)
	}
	return Date{t: t}, nil
}

// MustDate parses an ISO calendar date and panics on failure. For seed data
// and tests only.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// String returns the ISO form, or the empty string for the zero value.
func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		*d = Date{}
		return nil // lenient: unreadable dates normalize to "no date"
	}
	*d = Date{t: t}
	return nil
}
