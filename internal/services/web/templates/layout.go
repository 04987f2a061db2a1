package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	webi18n "github.com/nominaweb/nominaweb/internal/services/web/platform/i18n"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
)

// Swap target ids shared by layout, pages, and handlers.
const (
	MainID  = "main"
	ModalID = "modal"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// AppToast is a one-time notice rendered by the full-page layout.
type AppToast struct {
	Kind    string
	Message string
}

// AppMainHeader describes the heading row above page content.
type AppMainHeader struct {
	Title       string
	ActionURL   string
	ActionLabel string
	// ActionModal opens the action in the modal container instead of
	// navigating.
	ActionModal bool
}

// LayoutOptions configures the full-page application shell.
type LayoutOptions struct {
	Title        string
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Header       *AppMainHeader
	Toast        *AppToast
}

type navItem struct {
	key  string
	path string
}

var navItems = []navItem{
	{key: "core.nav.dashboard", path: routepath.Dashboard},
	{key: "core.nav.empleados", path: routepath.Empleados},
	{key: "core.nav.cargos", path: routepath.Cargos},
	{key: "core.nav.contratos", path: routepath.Contratos},
	{key: "core.nav.prestamos", path: routepath.Prestamos},
	{key: "core.nav.comprobantes", path: routepath.Comprobantes},
	{key: "core.nav.cuentas", path: routepath.Cuentas},
	{key: "core.nav.flujo_caja", path: routepath.FlujoCaja},
	{key: "core.nav.ubicaciones", path: routepath.Ubicaciones},
	{key: "core.nav.perfil", path: routepath.Perfil},
}

func navActive(current, path string) bool {
	if path == routepath.Dashboard {
		return current == routepath.Dashboard || current == strings.TrimSuffix(routepath.Dashboard, "/")
	}
	return strings.HasPrefix(current, path) || current == strings.TrimSuffix(path, "/")
}

// AppLayout renders the application document with navigation, the main
// content area holding the children, and an empty modal container.
func AppLayout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		lang := opts.Lang
		if lang == "" {
			lang = "es-CO"
		}
		appName := T(opts.Loc, "core.app_name")
		title := appName
		if opts.Title != "" {
			title = opts.Title + " | " + appName
		}
		h.raw("<!DOCTYPE html>\n<html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="`, routepath.StaticPrefix, `app.css">`)
		h.raw(`<script src="`, htmxScriptURL, `" defer></script><script src="`, routepath.StaticPrefix, `app.js" defer></script>`)
		h.raw(`</head><body hx-boost="false"><div class="shell"><nav class="sidebar" aria-label="`)
		h.text(T(opts.Loc, "core.nav.label"))
		h.raw(`"><a class="brand"`)
		h.url("href", routepath.Dashboard)
		h.raw(">")
		h.text(appName)
		h.raw("</a><ul>")
		for _, item := range navItems {
			h.raw("<li><a")
			h.url("href", item.path)
			if navActive(opts.CurrentPath, item.path) {
				h.raw(` class="active" aria-current="page"`)
			}
			h.raw(">")
			h.text(T(opts.Loc, item.key))
			h.raw("</a></li>")
		}
		h.raw(`</ul><div class="languages">`)
		for _, option := range webi18n.LanguageOptions(opts.Loc, lang, opts.CurrentPath, opts.CurrentQuery) {
			h.raw("<a")
			h.url("href", option.URL)
			h.attr("hreflang", option.Tag)
			if option.Active {
				h.raw(` class="active"`)
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw(`</div></nav><div class="content">`)
		if opts.Toast != nil && opts.Toast.Message != "" {
			h.raw(`<div id="app-toast" role="status"`)
			h.attr("class", "toast toast-"+opts.Toast.Kind)
			h.raw(">")
			h.text(opts.Toast.Message)
			h.raw("</div>")
		}
		h.raw(`<main id="`, MainID, `">`)
		h.component(ctx, AppMainContent(opts.Loc, opts.Header))
		h.raw(`</main></div></div><div id="`, ModalID, `"></div></body></html>`)
		return h.err
	})
}

// AppMainContent renders the page heading followed by the children. HTMX
// navigation swaps it into #main.
func AppMainContent(loc Localizer, header *AppMainHeader) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		if header != nil && header.Title != "" {
			h.raw(`<header class="page-header"><h1>`)
			h.text(header.Title)
			h.raw("</h1>")
			if header.ActionURL != "" {
				h.raw(`<a class="button primary"`)
				if header.ActionModal {
					h.hxGet(header.ActionURL, ModalID)
				} else {
					h.url("href", header.ActionURL)
				}
				h.raw(">")
				h.text(header.ActionLabel)
				h.raw("</a>")
			}
			h.raw("</header>")
		}
		h.children(ctx)
		return h.err
	})
}

// ModalFrame wraps the children in the dialog chrome swapped into #modal.
func ModalFrame(loc Localizer, title string, closeURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<div class="modal-backdrop" data-modal><section class="modal" role="dialog" aria-modal="true" aria-labelledby="modal-title"><header><h2 id="modal-title">`)
		h.text(title)
		h.raw(`</h2><a class="modal-close" data-modal-close`)
		h.url("href", closeURL)
		h.attr("aria-label", T(loc, "core.action.close"))
		h.raw(">&times;</a></header>")
		h.children(ctx)
		h.raw("</section></div>")
		return h.err
	})
}

// PageCard wraps modal content rendered as a standalone page for clients
// without HTMX.
func PageCard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(w)
		h.raw(`<section class="card">`)
		h.children(ctx)
		h.raw("</section>")
		return h.err
	})
}
