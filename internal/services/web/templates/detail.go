package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// DetailField is one label/value pair of a read-only record view. A non-empty
// URL renders the value as a link.
type DetailField struct {
	Label string
	Value string
	URL   string
}

// UploadView is a file upload form attached to one record field.
type UploadView struct {
	Label      string
	Action     string
	Hint       string
	CurrentURL string
	Accept     string
}

// DetailView is the view model of a record detail modal.
type DetailView struct {
	Title     string
	Fields    []DetailField
	Sections  []templ.Component
	Uploads   []UploadView
	EditURL   string
	DeleteURL string
	CloseURL  string
	Alert     *AlertView
}

// Detail renders the record fields, extra sections, and upload forms.
func Detail(loc Localizer, view DetailView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.component(ctx, Alert(view.Alert))
		h.component(ctx, DetailList(view.Fields))
		for _, section := range view.Sections {
			h.component(ctx, section)
		}
		for _, upload := range view.Uploads {
			writeUpload(h, loc, upload)
		}
		h.raw(`<footer class="form-actions">`)
		if view.DeleteURL != "" {
			h.raw(`<a class="button danger"`)
			h.hxGet(view.DeleteURL, ModalID)
			h.raw(">")
			h.text(T(loc, "core.action.delete"))
			h.raw("</a>")
		}
		if view.EditURL != "" {
			h.raw(`<a class="button primary"`)
			h.hxGet(view.EditURL, ModalID)
			h.raw(">")
			h.text(T(loc, "core.action.edit"))
			h.raw("</a>")
		}
		h.raw("</footer>")
		return h.err
	})
}

// DetailList renders a definition list of fields.
func DetailList(fields []DetailField) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<dl class="detail">`)
		for _, field := range fields {
			h.raw("<dt>")
			h.text(field.Label)
			h.raw("</dt><dd>")
			if field.URL != "" {
				h.raw(`<a target="_blank" rel="noopener"`)
				h.url("href", field.URL)
				h.raw(">")
				h.text(OrDash(field.Value))
				h.raw("</a>")
			} else {
				h.text(OrDash(field.Value))
			}
			h.raw("</dd>")
		}
		h.raw("</dl>")
		return h.err
	})
}

func writeUpload(h *html, loc Localizer, upload UploadView) {
	h.raw(`<form class="upload" method="post" enctype="multipart/form-data" hx-encoding="multipart/form-data"`)
	h.url("action", upload.Action)
	h.attr("hx-post", upload.Action)
	h.raw(` hx-target="#`, ModalID, `" hx-swap="innerHTML"><label>`)
	h.text(upload.Label)
	h.raw(`<input type="file" name="archivo" required`)
	h.attrIf("accept", upload.Accept)
	h.raw("></label>")
	if upload.Hint != "" {
		h.raw(`<small class="hint">`)
		h.text(upload.Hint)
		h.raw("</small>")
	}
	if upload.CurrentURL != "" {
		h.raw(`<a class="current-file" target="_blank" rel="noopener"`)
		h.url("href", upload.CurrentURL)
		h.raw(">")
		h.text(T(loc, "core.upload.current"))
		h.raw("</a>")
	}
	h.raw(`<button type="submit">`)
	h.text(T(loc, "core.action.upload"))
	h.raw("</button></form>")
}

// ConfirmView is the view model of a delete confirmation.
type ConfirmView struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
	Alert     *AlertView
}

// Confirm renders a destructive-action confirmation.
func Confirm(loc Localizer, view ConfirmView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.component(ctx, Alert(view.Alert))
		h.raw("<p>")
		h.text(view.Message)
		h.raw(`</p><form method="post"`)
		h.url("action", view.Action)
		h.attr("hx-post", view.Action)
		h.raw(` hx-target="#`, ModalID, `" hx-swap="innerHTML"><footer class="form-actions"><a class="button secondary" data-modal-close`)
		h.url("href", view.CancelURL)
		h.raw(">")
		h.text(T(loc, "core.action.cancel"))
		h.raw(`</a><button type="submit" class="danger">`)
		h.text(T(loc, "core.action.delete"))
		h.raw("</button></footer></form>")
		return h.err
	})
}
