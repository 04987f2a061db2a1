package domain

import (
	"net/mail"
	"slices"
	"strings"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// Validation message keys shared by every record.
const (
	KeyInvalidInput  = "core.error.invalid_input"
	KeyRequired      = "core.validation.required"
	KeyEmail         = "core.validation.email"
	KeyChoice        = "core.validation.choice"
	KeyPositive      = "core.validation.positive"
	KeyNonNegative   = "core.validation.non_negative"
	KeyDateOrder     = "core.validation.date_order"
	KeyOutOfRange    = "core.validation.out_of_range"
	KeyInvalidNumber = "core.validation.number"
	KeyInvalidDate   = "core.validation.date"
)

// Problems collects per-field validation failures keyed by form field name.
// The first failure recorded for a field wins.
type Problems map[string]string

// Add records key for field unless the field already failed.
func (p Problems) Add(field, key string) {
	if _, exists := p[field]; exists {
		return
	}
	p[field] = key
}

// Required records a failure when value is blank.
func (p Problems) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		p.Add(field, KeyRequired)
	}
}

// Choice records a failure when value is not one of options.
func (p Problems) Choice(field, value string, options []string) {
	if !slices.Contains(options, value) {
		p.Add(field, KeyChoice)
	}
}

// Email records a failure when a non-blank value is not a bare address.
func (p Problems) Email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		p.Add(field, KeyEmail)
	}
}

// Err returns an invalid-input error when any field failed, else nil.
func (p Problems) Err() error {
	if len(p) == 0 {
		return nil
	}
	return apperrors.Invalid(KeyInvalidInput, map[string]string(p))
}
