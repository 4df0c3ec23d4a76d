// Package month implements the calendar-month type used throughout the
// budget engine. A month is canonically the first day of the month at
// midnight UTC, and its wire format is the fixed string "YYYY-MM-01".
package month

import (
	"fmt"
	"regexp"
	"time"

	apperrors "kakeibo/internal/errors"
)

// Layout is the wire and storage format for months.
const Layout = "2006-01-02"

// formatRe pins the day component to the literal "01"; no other date
// granularity is accepted.
var formatRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-01$`)

// Month is a calendar month, represented by its first day at midnight UTC.
// The zero value is not a valid month; construct via Parse or FromTime.
type Month struct {
	start time.Time
}

// Parse parses a month string in YYYY-MM-01 format.
func Parse(s string) (Month, error) {
	if !formatRe.MatchString(s) {
		return Month{}, apperrors.WithMessage(apperrors.ErrInvalidMonth,
			fmt.Sprintf("%q is not a valid month: expected YYYY-MM-01", s))
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Month{}, apperrors.WithMessage(apperrors.ErrInvalidMonth,
			fmt.Sprintf("%q is not a valid month: %v", s, err))
	}
	return Month{start: t.UTC()}, nil
}

// FromTime returns the month containing t.
func FromTime(t time.Time) Month {
	u := t.UTC()
	return Month{start: time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// String returns the canonical YYYY-MM-01 form.
func (m Month) String() string {
	return m.start.Format(Layout)
}

// Start returns the first instant of the month.
func (m Month) Start() time.Time {
	return m.start
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	return Month{start: m.start.AddDate(0, 1, 0)}
}

// Window returns the half-open interval [start, start+1 month) that
// bounds the month's ledger activity.
func (m Month) Window() (time.Time, time.Time) {
	return m.start, m.Next().start
}

// Equal reports whether two months are the same calendar month.
func (m Month) Equal(o Month) bool {
	return m.start.Equal(o.start)
}

// IsZero reports whether the month is the uninitialized zero value.
func (m Month) IsZero() bool {
	return m.start.IsZero()
}

// MarshalJSON encodes the month as its canonical string.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a canonical month string.
func (m *Month) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return apperrors.ErrInvalidMonth
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
