package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	Now        = "now"
	DateLayout = "2006-01-02"
)

// Start is either the literal "now" or a calendar date. The zero value is an
// unknown start.
type Start struct {
	Immediate bool
	Date      time.Time
}

func Immediately() Start {
	return Start{Immediate: true}
}

func On(d time.Time) Start {
	y, m, day := d.Date()
	return Start{Date: time.Date(y, m, day, 0, 0, 0, 0, time.UTC)}
}

// Parse accepts "now" (and the aliases "immediately", "asap"), YYYY-MM-DD and
// RFC 3339 timestamps. An empty string yields the zero Start.
func Parse(s string) (Start, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return Start{}, nil
	case Now, "immediately", "asap":
		return Immediately(), nil
	}
	if d, err := time.Parse(DateLayout, v); err == nil {
		return On(d), nil
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
		return On(t.UTC()), nil
	}
	return Start{}, fmt.Errorf("invalid start date %q", s)
}

func (s Start) IsZero() bool {
	return !s.Immediate && s.Date.IsZero()
}

// NoLaterThan reports whether s is available on or before want. "now" is
// earlier than any date.
func (s Start) NoLaterThan(want Start) bool {
	if s.IsZero() || want.IsZero() {
		return false
	}
	if s.Immediate {
		return true
	}
	if want.Immediate {
		return false
	}
	return !s.Date.After(want.Date)
}

func (s Start) String() string {
	switch {
	case s.Immediate:
		return Now
	case s.Date.IsZero():
		return ""
	default:
		return s.Date.Format(DateLayout)
	}
}

func (s Start) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Start) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Start{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
