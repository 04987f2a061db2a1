package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FilterSelect is a convenience select in the list toolbar.
type FilterSelect struct {
	Name    string
	Label   string
	Options []SelectOption
}

// ColumnHeader is one table heading. SortURL is empty for unsortable columns.
type ColumnHeader struct {
	Label   string
	SortURL string
	// SortDir is "asc" or "desc" when the list is ordered by this column.
	SortDir string
	Class   string
}

// TableCell is one rendered table value.
type TableCell struct {
	Text  string
	Class string
}

// TableRow is one record row with its modal actions.
type TableRow struct {
	ID        string
	Cells     []TableCell
	DetailURL string
	EditURL   string
	DeleteURL string
}

// ListView is the view model of a resource list page.
type ListView struct {
	Area       string
	BaseURL    string
	Search     string
	Filter     string
	OrderBy    string
	PageSize   int
	Selects    []FilterSelect
	Headers    []ColumnHeader
	Rows       []TableRow
	Pagination PaginationView
	Summary    templ.Component
	Alert      *AlertView
}

// ListPage renders the toolbar, optional summary, table, and pagination.
func ListPage(loc Localizer, view ListView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section class="list"`)
		h.attr("id", view.Area+"-list")
		h.raw(">")
		h.component(ctx, Alert(view.Alert))
		writeToolbar(h, loc, view)
		h.component(ctx, view.Summary)
		writeTable(h, loc, view)
		if len(view.Rows) > 0 {
			h.component(ctx, Pagination(loc, view.Pagination))
		}
		h.raw("</section>")
		return h.err
	})
}

func writeToolbar(h *html, loc Localizer, view ListView) {
	h.raw(`<form class="toolbar" method="get"`)
	h.url("action", view.BaseURL)
	h.attr("hx-get", view.BaseURL)
	h.raw(` hx-target="#`, MainID, `" hx-push-url="true"><label>`)
	h.text(T(loc, "core.list.search"))
	h.raw(`<input type="search" name="q"`)
	h.attr("value", view.Search)
	h.attr("placeholder", T(loc, "core.list.search_placeholder"))
	h.raw("></label>")
	for _, sel := range view.Selects {
		h.raw("<label>")
		h.text(sel.Label)
		h.raw("<select")
		h.attr("name", sel.Name)
		h.raw(">")
		writeOptions(h, T(loc, "core.list.any"), sel.Options)
		h.raw("</select></label>")
	}
	h.raw(`<details class="advanced"`)
	h.flag("open", view.Filter != "")
	h.raw("><summary>")
	h.text(T(loc, "core.list.advanced"))
	h.raw(`</summary><label>`)
	h.text(T(loc, "core.list.filter"))
	h.raw(`<input type="text" name="filter"`)
	h.attr("value", view.Filter)
	h.attr("placeholder", T(loc, "core.list.filter_placeholder"))
	h.raw("></label></details>")
	h.raw(`<input type="hidden" name="order_by"`)
	h.attr("value", view.OrderBy)
	h.raw(">")
	if view.PageSize > 0 {
		h.raw(`<input type="hidden" name="page_size"`)
		h.attr("value", itoa(view.PageSize))
		h.raw(">")
	}
	h.raw(`<button type="submit">`)
	h.text(T(loc, "core.action.apply"))
	h.raw(`</button><a class="button secondary"`)
	h.hxGet(view.BaseURL, MainID)
	h.raw(">")
	h.text(T(loc, "core.action.clear"))
	h.raw("</a></form>")
}

func writeTable(h *html, loc Localizer, view ListView) {
	h.raw(`<table class="table"><thead><tr>`)
	for _, header := range view.Headers {
		h.raw("<th")
		h.attrIf("class", header.Class)
		switch header.SortDir {
		case "asc":
			h.raw(` aria-sort="ascending"`)
		case "desc":
			h.raw(` aria-sort="descending"`)
		}
		h.raw(">")
		if header.SortURL != "" {
			h.raw("<a")
			h.hxGet(header.SortURL, MainID)
			h.raw(">")
			h.text(header.Label)
			h.raw("</a>")
		} else {
			h.text(header.Label)
		}
		h.raw("</th>")
	}
	h.raw(`<th class="actions"><span class="sr-only">`)
	h.text(T(loc, "core.list.actions"))
	h.raw("</span></th></tr></thead><tbody>")
	if len(view.Rows) == 0 {
		h.raw("<tr><td")
		h.attr("colspan", itoa(len(view.Headers)+1))
		h.raw(` class="empty">`)
		h.text(T(loc, "core.list.empty"))
		h.raw("</td></tr>")
	}
	for _, row := range view.Rows {
		h.raw("<tr")
		h.attrIf("data-id", row.ID)
		h.raw(">")
		for _, cell := range row.Cells {
			h.raw("<td")
			h.attrIf("class", cell.Class)
			h.raw(">")
			h.text(cell.Text)
			h.raw("</td>")
		}
		h.raw(`<td class="actions">`)
		writeRowAction(h, row.DetailURL, T(loc, "core.action.view"), "")
		writeRowAction(h, row.EditURL, T(loc, "core.action.edit"), "")
		writeRowAction(h, row.DeleteURL, T(loc, "core.action.delete"), "danger")
		h.raw("</td></tr>")
	}
	h.raw("</tbody></table>")
}

func writeRowAction(h *html, url, label, class string) {
	if url == "" {
		return
	}
	h.raw("<a")
	h.attrIf("class", class)
	h.hxGet(url, ModalID)
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}
