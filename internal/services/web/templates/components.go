package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Alert kinds.
const (
	AlertError   = "error"
	AlertWarning = "warning"
	AlertSuccess = "success"
	AlertInfo    = "info"
)

// AlertView is an inline message shown above page or modal content.
type AlertView struct {
	Kind    string
	Message string
}

// ErrorAlert builds an error alert, or nil for a blank message.
func ErrorAlert(message string) *AlertView {
	if message == "" {
		return nil
	}
	return &AlertView{Kind: AlertError, Message: message}
}

// Alert renders an inline alert box.
func Alert(alert *AlertView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if alert == nil || alert.Message == "" {
			return nil
		}
		kind := alert.Kind
		if kind == "" {
			kind = AlertError
		}
		h := newHTML(w)
		h.raw("<div")
		h.attr("class", "alert alert-"+kind)
		if kind == AlertError {
			h.raw(` role="alert"`)
		} else {
			h.raw(` role="status"`)
		}
		h.raw(">")
		h.text(alert.Message)
		h.raw("</div>")
		return h.err
	})
}

// SelectOption is one choice in a select input.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
	// Group is the parent key of a dependent option, for example the
	// departamento of a municipio. It is not rendered.
	Group string
}

// InGroup returns the options whose Group is group.
func InGroup(options []SelectOption, group string) []SelectOption {
	out := make([]SelectOption, 0, len(options))
	for _, option := range options {
		if option.Group == group {
			out = append(out, option)
		}
	}
	return out
}

// MarkSelected returns a copy of options with value selected.
func MarkSelected(options []SelectOption, value string) []SelectOption {
	out := make([]SelectOption, len(options))
	for idx, option := range options {
		option.Selected = option.Value == value
		out[idx] = option
	}
	return out
}

// Options renders bare option elements, used for dependent selects.
func Options(placeholder string, options []SelectOption) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		writeOptions(h, placeholder, options)
		return h.err
	})
}

func writeOptions(h *html, placeholder string, options []SelectOption) {
	if placeholder != "" {
		h.raw(`<option value="">`)
		h.text(placeholder)
		h.raw("</option>")
	}
	for _, option := range options {
		h.raw("<option")
		h.attr("value", option.Value)
		h.flag("selected", option.Selected)
		h.raw(">")
		h.text(option.Label)
		h.raw("</option>")
	}
}

// PageLink is one numbered pagination link.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// PaginationView describes the pagination bar under a table.
type PaginationView struct {
	Summary string
	PrevURL string
	NextURL string
	Pages   []PageLink
}

// Pagination renders the pagination bar. Links swap #main and update the
// browser URL.
func Pagination(loc Localizer, view PaginationView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<nav class="pagination"`)
		h.attr("aria-label", T(loc, "core.pagination.label"))
		h.raw(`><span class="pagination-summary">`)
		h.text(view.Summary)
		h.raw("</span><ul>")
		writePageStep(h, view.PrevURL, T(loc, "core.pagination.prev"), "prev")
		for _, page := range view.Pages {
			h.raw("<li>")
			if page.Current {
				h.raw(`<span aria-current="page">`, strconv.Itoa(page.Number), "</span>")
			} else {
				h.raw("<a")
				h.hxGet(page.URL, MainID)
				h.raw(">", strconv.Itoa(page.Number), "</a>")
			}
			h.raw("</li>")
		}
		writePageStep(h, view.NextURL, T(loc, "core.pagination.next"), "next")
		h.raw("</ul></nav>")
		return h.err
	})
}

func writePageStep(h *html, url, label, rel string) {
	h.raw("<li>")
	if url == "" {
		h.raw(`<span class="disabled">`)
		h.text(label)
		h.raw("</span>")
	} else {
		h.raw("<a")
		h.hxGet(url, MainID)
		h.attr("rel", rel)
		h.raw(">")
		h.text(label)
		h.raw("</a>")
	}
	h.raw("</li>")
}
