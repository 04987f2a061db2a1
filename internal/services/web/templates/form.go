package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Form field kinds.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldTel      = "tel"
	FieldDate     = "date"
	FieldNumber   = "number"
	FieldMoney    = "money"
	FieldSelect   = "select"
	FieldTextarea = "textarea"
	FieldCheckbox = "checkbox"
	FieldHidden   = "hidden"
)

// FormField is one labelled form input.
type FormField struct {
	Name     string
	Label    string
	Kind     string
	Value    string
	Checked  bool
	Options  []SelectOption
	Required bool
	Error    string
	Hint     string
	// Attrs carries extra input attributes such as hx-get for dependent
	// selects.
	Attrs templ.Attributes
}

// FormView is the view model of a create or edit form.
type FormView struct {
	ID          string
	Title       string
	Action      string
	SubmitLabel string
	CancelURL   string
	Alert       *AlertView
	Fields      []FormField
	// Extra renders after the fields, for nested rows such as voucher lines.
	Extra templ.Component
	// Target is the swap target for the submit response; defaults to the
	// modal container.
	Target string
	// Swap is the hx-swap strategy; defaults to innerHTML.
	Swap string
}

// Form renders a form whose submit response replaces the target container.
func Form(loc Localizer, view FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		target := view.Target
		if target == "" {
			target = ModalID
		}
		h.raw(`<form class="form" method="post" novalidate`)
		h.attrIf("id", view.ID)
		h.url("action", view.Action)
		h.attr("hx-post", view.Action)
		h.attr("hx-target", "#"+target)
		swap := view.Swap
		if swap == "" {
			swap = "innerHTML"
		}
		h.attr("hx-swap", swap)
		h.raw(">")
		h.component(ctx, Alert(view.Alert))
		h.raw(`<div class="fields">`)
		for _, field := range view.Fields {
			writeField(h, loc, field)
		}
		h.raw("</div>")
		h.component(ctx, view.Extra)
		h.raw(`<footer class="form-actions">`)
		if view.CancelURL != "" {
			h.raw(`<a class="button secondary" data-modal-close`)
			h.url("href", view.CancelURL)
			h.raw(">")
			h.text(T(loc, "core.action.cancel"))
			h.raw("</a>")
		}
		submit := view.SubmitLabel
		if submit == "" {
			submit = T(loc, "core.action.save")
		}
		h.raw(`<button type="submit" class="primary">`)
		h.text(submit)
		h.raw("</button></footer></form>")
		return h.err
	})
}

func writeField(h *html, loc Localizer, field FormField) {
	id := "field-" + field.Name
	if field.Kind == FieldHidden {
		h.raw(`<input type="hidden"`)
		h.attr("name", field.Name)
		h.attr("value", field.Value)
		h.raw(">")
		return
	}
	class := "field"
	if field.Error != "" {
		class += " has-error"
	}
	h.raw("<div")
	h.attr("class", class)
	h.raw(">")
	if field.Kind == FieldCheckbox {
		h.raw(`<label class="checkbox"><input type="checkbox" value="true"`)
		h.attr("id", id)
		h.attr("name", field.Name)
		h.flag("checked", field.Checked)
		h.attrs(field.Attrs)
		h.raw("> ")
		h.text(field.Label)
		h.raw("</label>")
		writeFieldMessages(h, id, field)
		h.raw("</div>")
		return
	}
	h.raw("<label")
	h.attr("for", id)
	h.raw(">")
	h.text(field.Label)
	if field.Required {
		h.raw(` <span class="required" aria-hidden="true">*</span>`)
	}
	h.raw("</label>")
	switch field.Kind {
	case FieldSelect:
		h.raw("<select")
		writeInputAttrs(h, id, field)
		h.raw(">")
		writeOptions(h, T(loc, "core.form.choose"), field.Options)
		h.raw("</select>")
	case FieldTextarea:
		h.raw(`<textarea rows="3"`)
		writeInputAttrs(h, id, field)
		h.raw(">")
		h.text(field.Value)
		h.raw("</textarea>")
	default:
		inputType := field.Kind
		switch field.Kind {
		case "":
			inputType = FieldText
		case FieldMoney:
			inputType = FieldText
		}
		h.raw("<input")
		h.attr("type", inputType)
		if field.Kind == FieldMoney {
			h.raw(` inputmode="decimal"`)
		}
		writeInputAttrs(h, id, field)
		h.attr("value", field.Value)
		h.raw(">")
	}
	writeFieldMessages(h, id, field)
	h.raw("</div>")
}

func writeInputAttrs(h *html, id string, field FormField) {
	h.attr("id", id)
	h.attr("name", field.Name)
	h.flag("required", field.Required)
	if field.Error != "" {
		h.raw(` aria-invalid="true"`)
		h.attr("aria-describedby", id+"-error")
	}
	h.attrs(field.Attrs)
}

func writeFieldMessages(h *html, id string, field FormField) {
	if field.Hint != "" {
		h.raw(`<small class="hint">`)
		h.text(field.Hint)
		h.raw("</small>")
	}
	if field.Error != "" {
		h.raw(`<small class="error"`)
		h.attr("id", id+"-error")
		h.raw(">")
		h.text(field.Error)
		h.raw("</small>")
	}
}
