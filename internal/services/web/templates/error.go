package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

const (
	appErrorPageTitleNotFoundKey   = "core.error.page_title_not_found"
	appErrorPageTitleServerErrKey  = "core.error.page_title_server_error"
	appErrorHeadingNotFoundKey     = "core.error.title_not_found"
	appErrorHeadingServerErrKey    = "core.error.title_server_error"
	appErrorMessageNotFoundKey     = "core.error.message_not_found"
	appErrorMessageServerErrKey    = "core.error.message_server_error"
	appErrorBackToDashboardTextKey = "core.error.action_back_to_dashboard"
)

// AppErrorPageTitle returns the browser page title for app error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, appErrorPageTitleNotFoundKey)
	}
	return T(loc, appErrorPageTitleServerErrKey)
}

// AppErrorState renders the not-found or server-error panel.
func AppErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section id="app-error-state" class="error-state"><h1>`)
		h.text(appErrorHeading(statusCode, loc))
		h.raw("</h1><p>")
		h.text(appErrorMessage(statusCode, loc))
		h.raw(`</p><a class="button"`)
		h.url("href", routepath.Dashboard)
		h.raw(">")
		h.text(T(loc, appErrorBackToDashboardTextKey))
		h.raw("</a></section>")
		return h.err
	})
}

func appErrorHeading(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, appErrorHeadingNotFoundKey)
	}
	return T(loc, appErrorHeadingServerErrKey)
}

func appErrorMessage(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, appErrorMessageNotFoundKey)
	}
	return T(loc, appErrorMessageServerErrKey)
}

func normalizeAppErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
