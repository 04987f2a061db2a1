package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	t.Parallel()

	spanish := language.MustParse("es-CO")
	english := language.MustParse("en-US")

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		fallback    language.Tag
		want        language.Tag
		wantPersist bool
	}{
		{name: "query wins", target: "/app/?lang=en-US", cookie: "es-CO", accept: "es", want: english, wantPersist: true},
		{name: "base language query", target: "/app/?lang=en", want: english, wantPersist: true},
		{name: "unsupported query falls through to cookie", target: "/app/?lang=xx-invalid", cookie: "en-US", want: english},
		{name: "cookie before accept", target: "/app/", cookie: "es-CO", accept: "en-US", want: spanish},
		{name: "accept language", target: "/app/", accept: "fr-FR, en;q=0.8", want: english},
		{name: "unsupported accept uses fallback", target: "/app/", accept: "fr-FR", fallback: english, want: english},
		{name: "default fallback", target: "/app/", want: spanish},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := ResolveTag(req, tc.fallback)
			if got != tc.want {
				t.Fatalf("tag = %v, want %v", got, tc.want)
			}
			if persist != tc.wantPersist {
				t.Fatalf("persist = %v, want %v", persist, tc.wantPersist)
			}
		})
	}
}

func TestResolveLocalizerPersistsQueryChoice(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/?lang=en-US", nil)
	rr := httptest.NewRecorder()
	printer, lang := ResolveLocalizer(rr, req, language.Und)
	if printer == nil {
		t.Fatal("expected printer")
	}
	if lang != "en-US" {
		t.Fatalf("lang = %q, want %q", lang, "en-US")
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "en-US" {
		t.Fatalf("cookies = %+v, want language cookie", cookies)
	}
}

func TestResolveLocalizerSkipsCookieWithoutQuery(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	_, lang := ResolveLocalizer(rr, httptest.NewRequest(http.MethodGet, "/app/", nil), language.Und)
	if lang != "es-CO" {
		t.Fatalf("lang = %q, want %q", lang, "es-CO")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie")
	}
}

func TestLanguageURL(t *testing.T) {
	t.Parallel()

	got := LanguageURL("/app/empleados/", "page=2", "en-US")
	if got != "/app/empleados/?lang=en-US&page=2" {
		t.Fatalf("LanguageURL = %q", got)
	}
	if got := LanguageURL("", "", "es-CO"); got != "/?lang=es-CO" {
		t.Fatalf("LanguageURL(empty) = %q", got)
	}
}

func TestLanguageOptionsMarksActive(t *testing.T) {
	t.Parallel()

	options := LanguageOptions(nil, "en-US", "/app/", "")
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if options[0].Tag != "es-CO" || options[0].Active {
		t.Fatalf("options[0] = %+v", options[0])
	}
	if !options[1].Active || options[1].URL != "/app/?lang=en-US" {
		t.Fatalf("options[1] = %+v", options[1])
	}
	if LanguageKeyLabel(language.MustParse("es-CO")) != "core.language.es" {
		t.Fatalf("LanguageKeyLabel = %q", LanguageKeyLabel(language.MustParse("es-CO")))
	}
}
