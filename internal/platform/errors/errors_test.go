package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKnownKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{kind: KindInvalidInput, want: http.StatusBadRequest},
		{kind: KindUnauthorized, want: http.StatusUnauthorized},
		{kind: KindForbidden, want: http.StatusForbidden},
		{kind: KindNotFound, want: http.StatusNotFound},
		{kind: KindConflict, want: http.StatusConflict},
		{kind: KindUnavailable, want: http.StatusServiceUnavailable},
		{kind: KindUnknown, want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(E(tc.kind, "x")); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestHTTPStatusDefaultsToInternalError(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", got, http.StatusInternalServerError)
	}
	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("nil status = %d, want %d", got, http.StatusOK)
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindForbidden}
	if got := err.Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q, want %q", got, string(KindForbidden))
	}
}

func TestWrappedErrorsKeepKindAndKey(t *testing.T) {
	t.Parallel()

	base := EK(KindNotFound, "core.error.not_found", "empleado 7 not found")
	wrapped := fmt.Errorf("load empleado: %w", base)
	if got := HTTPStatus(wrapped); got != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", got, http.StatusNotFound)
	}
	if got := LocalizationKey(wrapped); got != "core.error.not_found" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if !Is(wrapped, KindNotFound) {
		t.Fatal("Is(wrapped, KindNotFound) = false, want true")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	err := Wrap(KindUnavailable, "", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != cause.Error() {
		t.Fatalf("Error() = %q, want cause text", err.Error())
	}
}

func TestInvalidCarriesSortedFieldMessage(t *testing.T) {
	t.Parallel()

	err := Invalid("core.error.invalid_input", map[string]string{
		"nombres":   "core.validation.required",
		"documento": "core.validation.required",
	})
	if got := KindOf(err); got != KindInvalidInput {
		t.Fatalf("KindOf() = %q", got)
	}
	want := "documento: core.validation.required; nombres: core.validation.required"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if fields := FieldErrors(err); fields["nombres"] != "core.validation.required" {
		t.Fatalf("FieldErrors() = %v", fields)
	}
	if FieldErrors(errors.New("plain")) != nil {
		t.Fatal("expected nil fields for untyped error")
	}
}
