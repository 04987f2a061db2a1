// Package requestmeta provides normalized request metadata helpers.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
)

// SchemePolicy controls how the request scheme is resolved.
//
// TrustForwardedProto must be enabled explicitly for X-Forwarded-Proto to be
// considered, so a client cannot claim HTTPS on a plain connection.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// Scheme returns "https" or "http" for r under policy.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return "http"
	}
	if policy.TrustForwardedProto {
		switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
		case "http", "https":
			return proto
		}
	}
	if r.TLS != nil {
		return "https"
	}
	if r.URL != nil && strings.EqualFold(r.URL.Scheme, "https") {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether cookies for r should be marked Secure.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// CrossOrigin reports whether r carries an Origin or Referer naming a
// different origin than the request itself. Requests without either header
// are not treated as cross-origin.
func CrossOrigin(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" || claimed == "null" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	parsed, err := url.Parse(claimed)
	if err != nil || parsed.Host == "" {
		return true
	}
	scheme := Scheme(r, policy)
	return !strings.EqualFold(parsed.Scheme, scheme) ||
		hostPort(parsed.Host, parsed.Scheme) != hostPort(r.Host, scheme)
}

// SameOriginWrites rejects state-changing requests that come from another
// origin with 403.
func SameOriginWrites(policy SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				if CrossOrigin(r, policy) {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hostPort(rawHost, scheme string) string {
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return ""
	}
	port := parsed.Port()
	if port == "" {
		switch strings.ToLower(scheme) {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return strings.ToLower(parsed.Hostname()) + ":" + port
}
