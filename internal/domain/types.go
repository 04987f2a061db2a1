// Package domain holds the HR, payroll, and accounting records mirrored from
// the REST backend, together with the validation and derived values the web
// forms, CLI, and MCP tools share.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and form layout for calendar dates.
const DateLayout = time.DateOnly

// Date is a calendar date encoded as "2006-01-02". The zero value encodes as
// JSON null.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a form or wire date. Blank input yields the zero Date.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, nil
	}
	if len(raw) > len(DateLayout) {
		// Accept full timestamps from backends that serialize DateTimeField.
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return NewDate(parsed.Year(), parsed.Month(), parsed.Day()), nil
		}
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return Date{Time: parsed}, nil
}

// String renders the date in DateLayout, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// YearMonth returns the YYYY-MM bucket of the date.
func (d Date) YearMonth() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01")
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the date as a plain string.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Decimal is a monetary or percentage amount. The backend serializes Django
// DecimalField values as strings; Decimal accepts strings or numbers and
// always encodes as a two-place string.
type Decimal float64

// Round2 rounds v half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cents returns the amount in hundredths, rounded.
func (d Decimal) Cents() int64 {
	return int64(math.Round(float64(d) * 100))
}

// Pesos returns the amount rounded to whole units.
func (d Decimal) Pesos() int64 {
	return int64(math.Round(float64(d)))
}

// Float returns the amount as float64.
func (d Decimal) Float() float64 {
	return float64(d)
}

// String renders the amount with two decimals.
func (d Decimal) String() string {
	return strconv.FormatFloat(Round2(float64(d)), 'f', 2, 64)
}

// ParseDecimal parses user or wire input. Colombian formatting ("1.234.567,89")
// and plain formatting ("1234567.89") are both accepted, as are currency
// symbols and spaces.
func ParseDecimal(raw string) (Decimal, error) {
	cleaned := strings.NewReplacer("$", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, nil
	}
	switch {
	case strings.Contains(cleaned, ","):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("parse decimal %q: invalid number", raw)
	}
	return Decimal(value), nil
}

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := ParseDecimal(raw)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decimal must be a number or string: %w", err)
	}
	*d = Decimal(value)
	return nil
}

// MarshalYAML renders the amount as a number.
func (d Decimal) MarshalYAML() (any, error) {
	return Round2(float64(d)), nil
}

// ID returns the referenced id or 0 for an unset optional reference.
func ID(ref *int64) int64 {
	if ref == nil {
		return 0
	}
	return *ref
}

// Ref returns a reference to id, or nil when id is not positive.
func Ref(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
