// Package modulehandler provides a composable base for web module handlers.
//
// Modules mounted under /app/ share handler infrastructure for localization,
// page and modal rendering, and error handling. This package extracts that
// shared scaffold so modules embed it rather than duplicating it.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	platformi18n "github.com/nominaweb/nominaweb/internal/platform/i18n"
	webi18n "github.com/nominaweb/nominaweb/internal/services/web/platform/i18n"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/pagerender"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/weberror"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// Base carries the logger and fallback language shared by module handlers.
// Embed this in module handler structs to get standard localization, page
// rendering, and error writing without duplicating boilerplate.
type Base struct {
	logger   *zap.Logger
	fallback language.Tag
}

// NewBase builds a handler base. A nil logger discards output and an
// undetermined fallback uses the default catalog language.
func NewBase(logger *zap.Logger, fallback language.Tag) Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fallback == language.Und {
		fallback = platformi18n.DefaultTag()
	}
	return Base{logger: logger, fallback: fallback}
}

// NewTestBase builds a handler base with a no-op logger and the default
// language.
func NewTestBase() Base {
	return NewBase(nil, language.Und)
}

// Logger returns the module logger.
func (b Base) Logger() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

// FallbackLanguage returns the language used when the request names none.
func (b Base) FallbackLanguage() language.Tag {
	if b.fallback == language.Und {
		return platformi18n.DefaultTag()
	}
	return b.fallback
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r, b.FallbackLanguage())
}

// WriteError renders a localized module error response. Server-side
// failures are logged at warn.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	if status := apperrors.HTTPStatus(err); status >= http.StatusInternalServerError {
		b.Logger().Warn("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	weberror.WriteModuleError(w, r, err, b.FallbackLanguage())
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.FallbackLanguage())
}

// WritePage renders a full module page (HTMX-aware) with the given title,
// header, and content fragment.
func (b Base) WritePage(
	w http.ResponseWriter,
	r *http.Request,
	title string,
	statusCode int,
	header *webtemplates.AppMainHeader,
	fragment templ.Component,
) {
	if err := pagerender.WriteModulePage(w, r, b.FallbackLanguage(), pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Header:     header,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteModal renders a modal dialog for HTMX or a standalone page otherwise.
func (b Base) WriteModal(w http.ResponseWriter, r *http.Request, page pagerender.ModalPage) {
	if err := pagerender.WriteModal(w, r, b.FallbackLanguage(), page); err != nil {
		b.WriteError(w, r, err)
	}
}
