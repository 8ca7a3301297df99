package league

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day encoded as YYYY-MM-DD in league documents.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(raw []byte) error {
	value := strings.TrimSpace(string(raw))
	if value == "" || value == "null" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", value, err)
	}
	d.Time = parsed
	return nil
}

// MarshalJSON and UnmarshalJSON shadow the RFC 3339 encoding promoted from
// time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(raw []byte) error {
	value := strings.TrimSpace(string(raw))
	if value == "null" {
		d.Time = time.Time{}
		return nil
	}
	unquoted, err := strconv.Unquote(value)
	if err != nil {
		return fmt.Errorf("parse date %s: %w", value, err)
	}
	return d.UnmarshalText([]byte(unquoted))
}
