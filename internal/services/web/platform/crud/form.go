package crud

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nominaweb/nominaweb/internal/domain"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// FormReader reads typed values from a submitted form and records the
// fields that failed to parse.
type FormReader struct {
	values   url.Values
	problems domain.Problems
}

// NewFormReader wraps submitted form values.
func NewFormReader(values url.Values) *FormReader {
	if values == nil {
		values = url.Values{}
	}
	return &FormReader{values: values, problems: domain.Problems{}}
}

// Fail records a parse failure for a field the reader did not parse itself,
// such as a nested row input.
func (f *FormReader) Fail(name, key string) {
	f.problems.Add(name, key)
}

// Values returns the raw submitted values.
func (f *FormReader) Values() url.Values {
	if f == nil {
		return url.Values{}
	}
	return f.values
}

// Has reports whether name was submitted.
func (f *FormReader) Has(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.values[name]
	return ok
}

// String returns the trimmed value of name.
func (f *FormReader) String(name string) string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f.values.Get(name))
}

// Bool reads a checkbox.
func (f *FormReader) Bool(name string) bool {
	switch strings.ToLower(f.String(name)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Int reads a whole number. Blank input yields 0.
func (f *FormReader) Int(name string) int {
	raw := f.String(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		f.problems.Add(name, domain.KeyInvalidNumber)
		return 0
	}
	return value
}

// ID reads a required foreign key. Blank input yields 0.
func (f *FormReader) ID(name string) int64 {
	raw := f.String(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		f.problems.Add(name, domain.KeyChoice)
		return 0
	}
	return value
}

// Ref reads an optional foreign key.
func (f *FormReader) Ref(name string) *int64 {
	return domain.Ref(f.ID(name))
}

// Decimal reads a money or percentage amount.
func (f *FormReader) Decimal(name string) domain.Decimal {
	value, err := domain.ParseDecimal(f.String(name))
	if err != nil {
		f.problems.Add(name, domain.KeyInvalidNumber)
		return 0
	}
	return value
}

// Date reads a calendar date.
func (f *FormReader) Date(name string) domain.Date {
	value, err := domain.ParseDate(f.String(name))
	if err != nil {
		f.problems.Add(name, domain.KeyInvalidDate)
		return domain.Date{}
	}
	return value
}

// Problems returns the parse failures recorded so far.
func (f *FormReader) Problems() domain.Problems {
	if f == nil {
		return domain.Problems{}
	}
	return f.problems
}

// mergeProblems combines parse failures with a validation error. Parse
// failures win for the same field.
func mergeProblems(parse domain.Problems, validation error) error {
	if len(parse) == 0 {
		return validation
	}
	merged := domain.Problems{}
	for field, key := range parse {
		merged.Add(field, key)
	}
	for field, key := range apperrors.FieldErrors(validation) {
		merged.Add(field, key)
	}
	return merged.Err()
}

// applySubmitted keeps what the user typed, so a rejected form re-renders
// unparseable input verbatim, and attaches localized field errors.
func applySubmitted(loc webtemplates.Localizer, fields []webtemplates.FormField, form *FormReader, fieldErrors map[string]string) []webtemplates.FormField {
	out := make([]webtemplates.FormField, len(fields))
	for idx, field := range fields {
		if form != nil {
			switch field.Kind {
			case webtemplates.FieldCheckbox:
				field.Checked = form.Bool(field.Name)
			case webtemplates.FieldSelect:
				if form.Has(field.Name) {
					field.Value = form.String(field.Name)
					field.Options = webtemplates.MarkSelected(field.Options, field.Value)
				}
			default:
				if form.Has(field.Name) {
					field.Value = form.values.Get(field.Name)
				}
			}
		}
		if key, ok := fieldErrors[field.Name]; ok {
			field.Error = webtemplates.T(loc, key)
		}
		out[idx] = field
	}
	return out
}

// Resubmit returns fields carrying the submitted values and the localized
// field errors of err. Handlers outside the resource lifecycle use it to
// re-render their own forms.
func Resubmit(loc webtemplates.Localizer, fields []webtemplates.FormField, form *FormReader, err error) []webtemplates.FormField {
	return applySubmitted(loc, fields, form, apperrors.FieldErrors(err))
}

// Check merges the parse failures of form with a validation error.
func Check(form *FormReader, validation error) error {
	return mergeProblems(form.Problems(), validation)
}
