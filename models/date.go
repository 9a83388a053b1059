// Package models holds the domain entities shared by the store, the services and
// the HTTP handlers: users, bills, calendar dates and pages of results.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// ISODateLayout is the layout used on the HTTP surface (query params and JSON).
	ISODateLayout = "2006-01-02"
	// DayMonthYearLayout is the layout used by bulk import files.
	DayMonthYearLayout = "02/01/2006"
)

// Date is a calendar date without a time-of-day component.
// The wrapped time is always midnight UTC so that two Dates for the same day compare equal.
type Date struct {
	time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// ParseDayMonthYear parses a dd/MM/yyyy string.
func ParseDayMonthYear(s string) (Date, error) {
	t, err := time.Parse(DayMonthYearLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(ISODateLayout)
}

// Equal reports whether both values denote the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Between reports whether d lies in [start, end], both ends inclusive.
func (d Date) Between(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// MarshalJSON writes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a "YYYY-MM-DD" string. JSON null leaves the value untouched.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string in format %s: %w", ISODateLayout, err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected format %s", s, ISODateLayout)
	}
	*d = parsed
	return nil
}
