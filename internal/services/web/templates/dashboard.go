package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// StatCard is one dashboard counter.
type StatCard struct {
	ID    string
	Label string
	Value string
	URL   string
}

// AuditRow is one recent change shown on the dashboard.
type AuditRow struct {
	At       string
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Summary  string
}

// DashboardView is the dashboard page view model.
type DashboardView struct {
	Cards  []StatCard
	Audit  []AuditRow
	Alerts []AlertView
}

// DashboardPage renders counters and the recent activity table.
func DashboardPage(loc Localizer, view DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section id="dashboard-root">`)
		for idx := range view.Alerts {
			h.component(ctx, Alert(&view.Alerts[idx]))
		}
		h.raw(`<div class="cards">`)
		for _, card := range view.Cards {
			h.raw(`<a class="card stat"`)
			h.attrIf("id", card.ID)
			h.url("href", card.URL)
			h.raw(`><span class="stat-value">`)
			h.text(card.Value)
			h.raw(`</span><span class="stat-label">`)
			h.text(card.Label)
			h.raw("</span></a>")
		}
		h.raw(`</div><h2>`)
		h.text(T(loc, "dashboard.audit.title"))
		h.raw("</h2>")
		h.component(ctx, AuditTable(loc, view.Audit))
		h.raw("</section>")
		return h.err
	})
}

// AuditTable renders audit entries newest first.
func AuditTable(loc Localizer, rows []AuditRow) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTML(w)
		if len(rows) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(loc, "dashboard.audit.empty"))
			h.raw("</p>")
			return h.err
		}
		h.raw(`<table class="table audit"><thead><tr>`)
		for _, key := range []string{"dashboard.audit.at", "dashboard.audit.actor", "dashboard.audit.action", "dashboard.audit.entity", "dashboard.audit.summary"} {
			h.raw("<th>")
			h.text(T(loc, key))
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		for _, row := range rows {
			h.raw("<tr><td>")
			h.text(row.At)
			h.raw("</td><td>")
			h.text(row.Actor)
			h.raw("</td><td>")
			h.text(row.Action)
			h.raw("</td><td>")
			h.text(row.Entity)
			if row.EntityID != "" {
				h.text(" #" + row.EntityID)
			}
			h.raw("</td><td>")
			h.text(row.Summary)
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table>")
		return h.err
	})
}
