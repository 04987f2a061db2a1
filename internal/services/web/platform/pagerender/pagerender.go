// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	flashnotice "github.com/nominaweb/nominaweb/internal/services/web/platform/flash"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
	webi18n "github.com/nominaweb/nominaweb/internal/services/web/platform/i18n"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Header     *webtemplates.AppMainHeader
	Fragment   templ.Component
}

// ModalPage describes a modal response. HTMX requests receive the dialog
// fragment for #modal; other clients receive the same body as a page.
type ModalPage struct {
	Title      string
	StatusCode int
	CloseURL   string
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page using shared app-shell rendering contracts.
func WriteModulePage(w http.ResponseWriter, r *http.Request, fallback language.Tag, page ModulePage) error {
	if w == nil {
		return nil
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, fallback)
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		main := webtemplates.AppMainContent(loc, page.Header)
		if err := main.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
		writeBuffered(w, page.StatusCode, &buf)
		return nil
	}

	layout := webtemplates.AppLayout(layoutOptions(w, r, loc, lang, page.Title, page.Header))
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	writeBuffered(w, page.StatusCode, &buf)
	return nil
}

// WriteModal writes a modal body framed as a dialog for HTMX or as a
// standalone page otherwise.
func WriteModal(w http.ResponseWriter, r *http.Request, fallback language.Tag, page ModalPage) error {
	if w == nil {
		return nil
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	if httpx.IsHTMXRequest(r) {
		loc, _ := webi18n.ResolveLocalizer(w, r, fallback)
		var buf bytes.Buffer
		frame := webtemplates.ModalFrame(loc, page.Title, page.CloseURL)
		if err := frame.Render(templ.WithChildren(httpx.RequestContext(r), body), &buf); err != nil {
			return err
		}
		writeBuffered(w, page.StatusCode, &buf)
		return nil
	}
	return WriteModulePage(w, r, fallback, ModulePage{
		Title:      page.Title,
		StatusCode: page.StatusCode,
		Header:     &webtemplates.AppMainHeader{Title: page.Title},
		Fragment:   webtemplates.Wrap(webtemplates.PageCard(), body),
	})
}

func layoutOptions(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer, lang, title string, header *webtemplates.AppMainHeader) webtemplates.LayoutOptions {
	opts := webtemplates.LayoutOptions{
		Title:  title,
		Lang:   lang,
		Loc:    loc,
		Header: header,
		Toast:  resolveFlashToast(w, r, loc),
	}
	if r != nil && r.URL != nil {
		opts.CurrentPath = r.URL.Path
		opts.CurrentQuery = r.URL.RawQuery
	}
	return opts
}

func writeBuffered(w http.ResponseWriter, statusCode int, buf *bytes.Buffer) {
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) *webtemplates.AppToast {
	notice, ok := flashnotice.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(loc.Sprintf(notice.Key, notice.FormatArgs()...))
	if message == "" {
		message = strings.TrimSpace(notice.Key)
	}
	if message == "" {
		return nil
	}
	return &webtemplates.AppToast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
