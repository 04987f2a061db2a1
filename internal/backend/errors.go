package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// nonFieldErrors is the DRF key for errors not tied to one field.
const nonFieldErrors = "non_field_errors"

// mapError converts a non-2xx backend response into a typed error.
func mapError(status int, body []byte) error {
	detail, fields := parseErrorBody(body)
	kind, key := classify(status)
	message := detail
	if message == "" && len(fields) > 0 {
		message = flattenFields(fields)
	}
	if message == "" {
		message = fmt.Sprintf("backend status %d", status)
	}
	err := apperrors.Error{Kind: kind, Key: key, Message: message}
	if kind == apperrors.KindInvalidInput && len(fields) > 0 {
		err.Fields = fields
	}
	return err
}

func classify(status int) (apperrors.Kind, string) {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperrors.KindInvalidInput, "core.error.invalid_input"
	case status == http.StatusUnauthorized:
		return apperrors.KindUnauthorized, "core.error.unauthorized"
	case status == http.StatusForbidden:
		return apperrors.KindForbidden, "core.error.forbidden"
	case status == http.StatusNotFound:
		return apperrors.KindNotFound, "core.error.not_found"
	case status == http.StatusConflict:
		return apperrors.KindConflict, "core.error.conflict"
	case status >= http.StatusInternalServerError:
		return apperrors.KindUnavailable, "core.error.unavailable"
	default:
		return apperrors.KindInvalidInput, "core.error.invalid_input"
	}
}

// parseErrorBody extracts the DRF "detail" string and any field errors.
// Field values may be strings, lists of strings, or nested objects (for
// nested serializers such as voucher lines); nested keys are joined with ".".
func parseErrorBody(body []byte) (string, map[string]string) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", nil
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		text := strings.TrimSpace(string(body))
		if len(text) > 200 || strings.HasPrefix(text, "<") {
			return "", nil
		}
		return text, nil
	}
	switch value := decoded.(type) {
	case map[string]any:
		detail := ""
		if raw, ok := value["detail"].(string); ok {
			detail = strings.TrimSpace(raw)
		}
		fields := map[string]string{}
		for key, raw := range value {
			if key == "detail" {
				continue
			}
			collectFieldErrors(fields, key, raw)
		}
		if len(fields) == 0 {
			fields = nil
		}
		return detail, fields
	case []any:
		return joinMessages(value), nil
	case string:
		return strings.TrimSpace(value), nil
	default:
		return "", nil
	}
}

func collectFieldErrors(fields map[string]string, prefix string, raw any) {
	switch value := raw.(type) {
	case string:
		fields[prefix] = strings.TrimSpace(value)
	case []any:
		allStrings := true
		for _, item := range value {
			if _, ok := item.(string); !ok {
				allStrings = false
				break
			}
		}
		if allStrings {
			if message := joinMessages(value); message != "" {
				fields[prefix] = message
			}
			return
		}
		for idx, item := range value {
			collectFieldErrors(fields, fmt.Sprintf("%s.%d", prefix, idx), item)
		}
	case map[string]any:
		for key, item := range value {
			collectFieldErrors(fields, prefix+"."+key, item)
		}
	}
}

func joinMessages(values []any) string {
	parts := make([]string, 0, len(values))
	for _, item := range values {
		if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
			parts = append(parts, strings.TrimSpace(text))
		}
	}
	return strings.Join(parts, ", ")
}

// flattenFields renders "campo: mensaje; ..." with non-field errors first
// and the rest sorted by field name.
func flattenFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if name != nonFieldErrors {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	parts := make([]string, 0, len(fields))
	if message, ok := fields[nonFieldErrors]; ok {
		parts = append(parts, message)
	}
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}
