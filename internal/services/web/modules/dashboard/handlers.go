package dashboard

import (
	"net/http"

	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// auditTimeLayout formats audit timestamps in the dashboard table.
const auditTimeLayout = "2006-01-02 15:04"

type handlers struct {
	modulehandler.Base
	service service
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(w, r)
	snapshot := h.service.load(r.Context(), h.Logger())
	title := webtemplates.T(loc, "dashboard.title")
	h.WritePage(w, r, title, http.StatusOK, &webtemplates.AppMainHeader{Title: title}, webtemplates.DashboardPage(loc, dashboardView(loc, snapshot)))
}

func dashboardView(loc webtemplates.Localizer, snapshot Snapshot) webtemplates.DashboardView {
	view := webtemplates.DashboardView{
		Cards: make([]webtemplates.StatCard, 0, len(snapshot.Stats)),
		Audit: auditRows(loc, snapshot.Audit),
	}
	for _, stat := range snapshot.Stats {
		value := webtemplates.Number(loc, stat.Value)
		if stat.Degraded {
			value = webtemplates.OrDash("")
		}
		view.Cards = append(view.Cards, webtemplates.StatCard{
			ID:    stat.ID,
			Label: webtemplates.T(loc, stat.Key),
			Value: value,
			URL:   stat.URL,
		})
	}
	if snapshot.Degraded() {
		view.Alerts = append(view.Alerts, webtemplates.AlertView{
			Kind:    webtemplates.AlertWarning,
			Message: webtemplates.T(loc, "dashboard.degraded"),
		})
	}
	return view
}

func auditRows(loc webtemplates.Localizer, entries []webstorage.AuditEntry) []webtemplates.AuditRow {
	rows := make([]webtemplates.AuditRow, 0, len(entries))
	for _, entry := range entries {
		entityID := entry.EntityID
		if entityID == "0" {
			entityID = ""
		}
		rows = append(rows, webtemplates.AuditRow{
			At:       entry.At.Local().Format(auditTimeLayout),
			Actor:    entry.Actor,
			Action:   webtemplates.T(loc, "dashboard.action."+string(entry.Action)),
			Entity:   webtemplates.T(loc, entry.Entity+".title"),
			EntityID: entityID,
			Summary:  entry.Summary,
		})
	}
	return rows
}
