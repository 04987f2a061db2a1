// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
	webi18n "github.com/nominaweb/nominaweb/internal/services/web/platform/i18n"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/pagerender"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Invalid-input
// errors without per-field details append the raw detail so users can fix
// filters and backend rejections.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	message := ""
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			message = strings.TrimSpace(loc.Sprintf(key))
		}
	}
	if message == "" {
		statusCode := apperrors.HTTPStatus(err)
		if statusCode < http.StatusBadRequest {
			statusCode = http.StatusInternalServerError
		}
		message = http.StatusText(statusCode)
	}
	if detail := invalidInputDetail(err); detail != "" && detail != message {
		message += ": " + detail
	}
	return message
}

func invalidInputDetail(err error) string {
	if !apperrors.Is(err, apperrors.KindInvalidInput) || len(apperrors.FieldErrors(err)) > 0 {
		return ""
	}
	var appErr apperrors.Error
	if !errors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Message)
}

// WriteAppError writes a localized app-shell error response for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, fallback language.Tag) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	loc, lang := webi18n.ResolveLocalizer(w, r, fallback)
	fragment := webtemplates.AppErrorState(statusCode, loc)
	ctx := httpx.RequestContext(r)

	if httpx.IsHTMXRequest(r) {
		var content templ.Component = webtemplates.AppMainContent(loc, nil)
		if httpx.HTMXTarget(r) == webtemplates.ModalID {
			content = webtemplates.ModalFrame(loc, webtemplates.AppErrorPageTitle(statusCode, loc), "")
		}
		var buf bytes.Buffer
		if err := content.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			http.Error(w, PublicMessage(loc, err), statusCode)
			return
		}
		writeHTML(w, statusCode, &buf)
		return
	}

	opts := webtemplates.LayoutOptions{
		Title: webtemplates.AppErrorPageTitle(statusCode, loc),
		Lang:  lang,
		Loc:   loc,
	}
	if r != nil && r.URL != nil {
		opts.CurrentPath = r.URL.Path
		opts.CurrentQuery = r.URL.RawQuery
	}
	var buf bytes.Buffer
	if err := webtemplates.AppLayout(opts).Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
		return
	}
	writeHTML(w, statusCode, &buf)
}

// WriteModuleError writes a module-safe localized error response. Not-found
// and server failures get the error page; other client errors get an inline
// alert.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, fallback language.Tag) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, fallback)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, fallback)
	alert := webtemplates.Alert(webtemplates.ErrorAlert(PublicMessage(loc, err)))
	if httpx.IsHTMXRequest(r) {
		var buf bytes.Buffer
		if renderErr := alert.Render(httpx.RequestContext(r), &buf); renderErr != nil {
			http.Error(w, PublicMessage(loc, err), statusCode)
			return
		}
		writeHTML(w, statusCode, &buf)
		return
	}
	if renderErr := pagerender.WriteModulePage(w, r, fallback, pagerender.ModulePage{
		Title:      http.StatusText(statusCode),
		StatusCode: statusCode,
		Fragment:   alert,
	}); renderErr != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

func writeHTML(w http.ResponseWriter, statusCode int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}
