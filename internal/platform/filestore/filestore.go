// Package filestore validates uploaded files and stores them either through
// the backend upload endpoints or in an S3 bucket.
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// Object is a validated upload bound to one record field.
type Object struct {
	// Resource is the backend collection, for example "contratos".
	Resource    string
	ID          int64
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (o Object) Size() int64 {
	return int64(len(o.Data))
}

// Reader returns a fresh reader over the payload.
func (o Object) Reader() io.Reader {
	return bytes.NewReader(o.Data)
}

// Store persists an object and attaches it to its record, returning the
// stored file URL.
type Store interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// Policy limits what a record field accepts.
type Policy struct {
	MaxBytes int64
	// Allowed lists exact media types or "type/*" families.
	Allowed []string
}

// Field policies.
var (
	PolicyFoto    = Policy{MaxBytes: 5 << 20, Allowed: []string{"image/jpeg", "image/png", "image/webp"}}
	PolicyPDF     = Policy{MaxBytes: 10 << 20, Allowed: []string{"application/pdf"}}
	PolicySoporte = Policy{MaxBytes: 10 << 20, Allowed: []string{"application/pdf", "image/*"}}
)

// Describe renders the limits for form hints, e.g. "PDF, 10 MiB".
func (p Policy) Describe() string {
	kinds := make([]string, 0, len(p.Allowed))
	for _, allowed := range p.Allowed {
		kind := allowed[strings.Index(allowed, "/")+1:]
		if kind == "*" {
			kind = allowed[:strings.Index(allowed, "/")]
		}
		kinds = append(kinds, strings.ToUpper(kind))
	}
	return strings.Join(kinds, ", ") + ", " + humanize.IBytes(uint64(p.MaxBytes))
}

// Accept reports whether contentType satisfies the policy.
func (p Policy) Accept(contentType string) bool {
	contentType = mediaType(contentType)
	for _, allowed := range p.Allowed {
		if family, ok := strings.CutSuffix(allowed, "/*"); ok {
			if strings.HasPrefix(contentType, family+"/") {
				return true
			}
			continue
		}
		if contentType == allowed {
			return true
		}
	}
	return false
}

// Read consumes r, enforces the size limit, and sniffs the content type.
// The declared client content type is ignored.
func Read(r io.Reader, name string, policy Policy) (Object, error) {
	if r == nil {
		return Object{}, apperrors.EK(apperrors.KindInvalidInput, "core.upload.missing", "file is required")
	}
	limit := policy.MaxBytes
	if limit <= 0 {
		limit = PolicySoporte.MaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Object{}, apperrors.EK(apperrors.KindInvalidInput, "core.upload.empty", "file is empty")
	}
	if int64(len(data)) > limit {
		return Object{}, apperrors.EK(apperrors.KindInvalidInput, "core.upload.too_large",
			fmt.Sprintf("file exceeds %s", humanize.IBytes(uint64(limit))))
	}
	contentType := mediaType(http.DetectContentType(data))
	if !policy.Accept(contentType) {
		return Object{}, apperrors.EK(apperrors.KindInvalidInput, "core.upload.type_not_allowed",
			fmt.Sprintf("file type %s is not allowed", contentType))
	}
	return Object{Name: SanitizeName(name), ContentType: contentType, Data: data}, nil
}

// SanitizeName reduces a client file name to a safe ASCII base name.
func SanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err == nil {
		name = folded
	}
	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_'):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	cleaned := strings.Trim(b.String(), "-.")
	if cleaned == "" {
		cleaned = "archivo"
	}
	if len(cleaned) > 80 {
		cleaned = cleaned[len(cleaned)-80:]
	}
	return cleaned
}

// ObjectKey builds "uploads/<area>/<uuid>-<name>".
func ObjectKey(area, name string) string {
	return path.Join("uploads", strings.Trim(area, "/"), uuid.NewString()+"-"+SanitizeName(name))
}

func mediaType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
