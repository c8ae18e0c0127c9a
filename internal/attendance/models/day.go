package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayLayout is the wire and storage format of a Day.
const DayLayout = "2006-01-02"

// Day is a calendar date. It is held as UTC midnight of that date so every store
// compares and indexes it identically regardless of the configured timezone.
type Day struct {
	t time.Time
}

// DayOf truncates instant to its calendar day as observed in loc.
func DayOf(instant time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	local := instant.In(loc)
	return NewDay(local.Year(), local.Month(), local.Day())
}

// NewDay builds a Day from calendar fields.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayFromStored rebuilds a Day from a timestamp read back from a store, trusting its
// wall-clock date fields rather than converting zones.
func DayFromStored(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay parses "YYYY-MM-DD".
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day{t: t}, nil
}

func (d Day) String() string    { return d.t.Format(DayLayout) }
func (d Day) Time() time.Time   { return d.t }
func (d Day) IsZero() bool      { return d.t.IsZero() }
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
