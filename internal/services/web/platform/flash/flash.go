// Package flash provides one-time web notices persisted across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
)

// CookieName is the canonical cookie used for one-time web notices.
const CookieName = "nw_flash"

// maxArgs bounds notice arguments so the cookie stays small.
const maxArgs = 4

// Kind classifies flash notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice stores one flash message reference and its format arguments.
type Notice struct {
	Kind Kind     `json:"kind"`
	Key  string   `json:"key"`
	Args []string `json:"args,omitempty"`
}

// NoticeSuccess creates a success notice for the provided localization key.
func NoticeSuccess(key string, args ...string) Notice {
	return Notice{Kind: KindSuccess, Key: key, Args: args}
}

// NoticeError creates an error notice for the provided localization key.
func NoticeError(key string, args ...string) Notice {
	return Notice{Kind: KindError, Key: key, Args: args}
}

// FormatArgs converts the notice arguments for message printers.
func (n Notice) FormatArgs() []any {
	out := make([]any, 0, len(n.Args))
	for _, arg := range n.Args {
		out = append(out, arg)
	}
	return out
}

// Write stores a flash notice cookie for the next page render.
func Write(w http.ResponseWriter, r *http.Request, notice Notice) {
	WriteWithPolicy(w, r, notice, requestmeta.SchemePolicy{})
}

// WriteWithPolicy stores a flash notice cookie, resolving the Secure flag
// with the given scheme policy.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear reads and clears the flash notice cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Notice{}, false
	}
	if w != nil {
		Clear(w, r)
	}
	notice, ok := decodeNotice(cookie.Value)
	if !ok {
		return Notice{}, false
	}
	return notice, true
}

// Clear expires any flash notice cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, requestmeta.SchemePolicy{}),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decodeNotice(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	if notice.Key == "" {
		return Notice{}, false
	}
	if len(notice.Args) > maxArgs {
		notice.Args = notice.Args[:maxArgs]
	}
	if len(notice.Args) == 0 {
		notice.Args = nil
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
