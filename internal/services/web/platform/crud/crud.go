// Package crud implements the list, modal form, detail, delete, and upload
// lifecycle shared by every resource area. Modules describe a resource with
// a Definition and Register mounts its routes.
package crud

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	"github.com/nominaweb/nominaweb/internal/platform/listing"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/modulehandler"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/requestmeta"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// Gateway is the backend surface of one collection.
type Gateway[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Column is one list table column.
type Column[T any] struct {
	// Label is a localization key.
	Label string
	// Sort names the schema field ordered by this column; empty disables
	// sorting.
	Sort  string
	Class string
	Value func(loc webtemplates.Localizer, item T, lookups Lookups) string
}

// Select is a list toolbar select translated into an equality filter term.
type Select struct {
	// Name is both the query parameter and the filter field.
	Name string
	// Label is a localization key.
	Label string
	// Lookup names the Lookups entry holding the options. When empty,
	// Options is used.
	Lookup  string
	Options func(loc webtemplates.Localizer) []webtemplates.SelectOption
	// Quote renders the value as a string literal in the filter.
	Quote bool
}

// Upload binds a file field of the record to an upload route.
type Upload[T any] struct {
	Field string
	// Label is a localization key.
	Label   string
	Policy  filestore.Policy
	Current func(T) string
}

// Definition describes one resource area.
type Definition[T any] struct {
	// Area is the audit entity name and the localization namespace.
	Area string
	// Resource is the backend collection name used for uploads.
	Resource string
	Prefix   string
	Gateway  Gateway[T]
	Schema   listing.Schema[T]
	ID       func(T) int64
	// Label names a record in notices, confirmations, and audit summaries.
	Label   func(T) string
	Columns []Column[T]
	Selects []Select
	Lookups map[string]LookupFunc
	Fields  func(loc webtemplates.Localizer, item T, lookups Lookups) []webtemplates.FormField
	Decode  func(form *FormReader, item *T)
	// Prepare normalizes and validates a decoded record before it is sent.
	Prepare func(item *T, creating bool) error
	Detail  func(loc webtemplates.Localizer, item T, lookups Lookups) []webtemplates.DetailField
	// Sections render below the detail fields, for example a schedule.
	Sections func(loc webtemplates.Localizer, item T, lookups Lookups) []templ.Component
	// FormExtra renders nested inputs after the form fields.
	FormExtra func(loc webtemplates.Localizer, item T, lookups Lookups, form *FormReader, fieldErrors map[string]string) templ.Component
	// Summary renders above the table over every filtered record.
	Summary func(loc webtemplates.Localizer, items []T) templ.Component
	Uploads []Upload[T]
}

// Deps carries the shared collaborators of every resource handler.
type Deps struct {
	Base         modulehandler.Base
	Audit        *auditlog.Recorder
	Files        filestore.Store
	SchemePolicy requestmeta.SchemePolicy
}

func (d Definition[T]) validate() error {
	switch {
	case strings.TrimSpace(d.Area) == "":
		return fmt.Errorf("crud definition area is required")
	case !strings.HasPrefix(d.Prefix, routepath.AppPrefix) || !strings.HasSuffix(d.Prefix, "/"):
		return fmt.Errorf("crud %s: prefix %q must be under %s and end with /", d.Area, d.Prefix, routepath.AppPrefix)
	case d.ID == nil || d.Label == nil:
		return fmt.Errorf("crud %s: id and label accessors are required", d.Area)
	case d.Fields == nil || d.Decode == nil || d.Prepare == nil || d.Detail == nil:
		return fmt.Errorf("crud %s: form and detail builders are required", d.Area)
	case len(d.Columns) == 0:
		return fmt.Errorf("crud %s: at least one column is required", d.Area)
	}
	for _, column := range d.Columns {
		if column.Value == nil {
			return fmt.Errorf("crud %s: column %q has no value", d.Area, column.Label)
		}
		if column.Sort != "" {
			if _, ok := d.Schema.Field(column.Sort); !ok {
				return fmt.Errorf("crud %s: column %q sorts by undeclared field %q", d.Area, column.Label, column.Sort)
			}
		}
	}
	for _, sel := range d.Selects {
		if _, ok := d.Schema.Field(sel.Name); !ok {
			return fmt.Errorf("crud %s: select %q is not a declared field", d.Area, sel.Name)
		}
		if sel.Lookup == "" && sel.Options == nil {
			return fmt.Errorf("crud %s: select %q has no options", d.Area, sel.Name)
		}
		if sel.Lookup != "" && d.Lookups[sel.Lookup] == nil {
			return fmt.Errorf("crud %s: select %q uses unknown lookup %q", d.Area, sel.Name, sel.Lookup)
		}
	}
	for _, upload := range d.Uploads {
		if strings.TrimSpace(upload.Field) == "" || d.Resource == "" {
			return fmt.Errorf("crud %s: uploads need a field and a backend resource", d.Area)
		}
	}
	return nil
}

// Register mounts the resource routes on mux under def.Prefix.
func Register[T any](mux *http.ServeMux, deps Deps, def Definition[T]) error {
	if mux == nil {
		return fmt.Errorf("crud %s: mux is required", def.Area)
	}
	if err := def.validate(); err != nil {
		return err
	}
	if def.Gateway == nil {
		def.Gateway = unavailableGateway[T]{}
	}
	h := &handler[T]{Base: deps.Base, def: def, audit: deps.Audit, files: deps.Files, policy: deps.SchemePolicy}
	prefix := def.Prefix
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.ListPattern, h.list)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.ListPattern, h.create)
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.NewPattern, h.newForm)
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.ItemPattern, h.detail)
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.EditPattern, h.editForm)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.EditPattern, h.update)
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.DeletePattern, h.confirmDelete)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.DeletePattern, h.delete)
	for _, upload := range def.Uploads {
		mux.HandleFunc(http.MethodPost+" "+prefix+routepath.FieldPattern(upload.Field), h.upload(upload))
	}
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.RestPattern, h.WriteNotFound)
	return nil
}

// Healthy reports whether a gateway is wired.
func Healthy[T any](gateway Gateway[T]) bool {
	if gateway == nil {
		return false
	}
	_, unavailable := gateway.(unavailableGateway[T])
	return !unavailable
}

type unavailableGateway[T any] struct{}

var errUnavailable = apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "backend is not configured")

func (unavailableGateway[T]) List(context.Context) ([]T, error) { return nil, errUnavailable }

func (unavailableGateway[T]) Get(context.Context, int64) (T, error) {
	var zero T
	return zero, errUnavailable
}

func (unavailableGateway[T]) Create(context.Context, T) (T, error) {
	var zero T
	return zero, errUnavailable
}

func (unavailableGateway[T]) Update(context.Context, int64, T) (T, error) {
	var zero T
	return zero, errUnavailable
}

func (unavailableGateway[T]) Delete(context.Context, int64) error { return errUnavailable }
