package templates

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/a-h/templ"
)

// html accumulates markup and remembers the first write error so components
// can emit long sequences without checking every call.
type html struct {
	w   io.Writer
	err error
}

func newHTML(w io.Writer) *html {
	return &html{w: w}
}

func (h *html) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *html) text(value string) {
	h.raw(templ.EscapeString(value))
}

func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// url writes a URL attribute, replacing unsafe schemes such as javascript:
// with templ's failed-sanitization placeholder.
func (h *html) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

// attrIf writes the attribute only for non-empty values.
func (h *html) attrIf(name, value string) {
	if value != "" {
		h.attr(name, value)
	}
}

func (h *html) flag(name string, on bool) {
	if on {
		h.raw(" ", name)
	}
}

func (h *html) attrs(attrs templ.Attributes) {
	if len(attrs) == 0 {
		return
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch value := attrs[name].(type) {
		case string:
			h.attr(name, value)
		case bool:
			h.flag(name, value)
		}
	}
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func (h *html) children(ctx context.Context) {
	h.component(templ.ClearChildren(ctx), templ.GetChildren(ctx))
}

// Wrap renders wrapper with content as its children.
func Wrap(wrapper, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if wrapper == nil {
			if content == nil {
				return nil
			}
			return content.Render(ctx, w)
		}
		return wrapper.Render(templ.WithChildren(ctx, content), w)
	})
}

// hxGet renders the attributes of a link that HTMX swaps into target.
func (h *html) hxGet(url, target string) {
	h.url("href", url)
	h.attr("hx-get", url)
	h.attr("hx-target", "#"+target)
	h.attr("hx-swap", "innerHTML")
	if target == MainID {
		h.attr("hx-push-url", "true")
	}
}

// Text renders escaped plain text.
func Text(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(value))
		return err
	})
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
