package crud

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nominaweb/nominaweb/internal/domain"
	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	"github.com/nominaweb/nominaweb/internal/platform/listing"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

type widget struct {
	ID     int64
	Nombre string
	Precio domain.Decimal
	Activo bool
	Grupo  int64
	Foto   string
}

type fakeGateway struct {
	mu        sync.Mutex
	items     map[int64]widget
	nextID    int64
	listErr   error
	createErr error
	deleteErr error
}

func newFakeGateway(items ...widget) *fakeGateway {
	g := &fakeGateway{items: map[int64]widget{}, nextID: 100}
	for _, item := range items {
		g.items[item.ID] = item
	}
	return g
}

func (g *fakeGateway) List(context.Context) ([]widget, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]widget, 0, len(g.items))
	for _, item := range g.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (g *fakeGateway) Get(_ context.Context, id int64) (widget, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	item, ok := g.items[id]
	if !ok {
		return widget{}, apperrors.EK(apperrors.KindNotFound, "core.error.not_found", fmt.Sprintf("widget %d", id))
	}
	return item, nil
}

func (g *fakeGateway) Create(_ context.Context, item widget) (widget, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return widget{}, g.createErr
	}
	g.nextID++
	item.ID = g.nextID
	g.items[item.ID] = item
	return item, nil
}

func (g *fakeGateway) Update(_ context.Context, id int64, item widget) (widget, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	item.ID = id
	g.items[id] = item
	return item, nil
}

func (g *fakeGateway) Delete(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.deleteErr != nil {
		return g.deleteErr
	}
	delete(g.items, id)
	return nil
}

type fakeFiles struct {
	mu   sync.Mutex
	puts []filestore.Object
	err  error
}

func (f *fakeFiles) Put(_ context.Context, obj filestore.Object) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.puts = append(f.puts, obj)
	return "https://files.example/" + obj.Name, nil
}

const widgetsPrefix = routepath.AppPrefix + "widgets/"

func widgetDefinition(gateway Gateway[widget]) Definition[widget] {
	return Definition[widget]{
		Area:     "widgets",
		Resource: "widgets",
		Prefix:   widgetsPrefix,
		Gateway:  gateway,
		Schema: listing.Schema[widget]{
			Fields: []listing.Field[widget]{
				listing.IntField("id", func(w widget) int64 { return w.ID }),
				listing.StringField("nombre", true, func(w widget) string { return w.Nombre }),
				listing.IntField("precio", func(w widget) int64 { return w.Precio.Pesos() }),
				listing.BoolField("activo", func(w widget) bool { return w.Activo }),
				listing.IntField("grupo", func(w widget) int64 { return w.Grupo }),
			},
			DefaultOrder: "nombre",
			PageSize:     listing.PageSizeConfig{Default: 2, Max: 10},
		},
		ID:    func(w widget) int64 { return w.ID },
		Label: func(w widget) string { return w.Nombre },
		Columns: []Column[widget]{
			{Label: "widgets.field.nombre", Sort: "nombre", Value: func(_ webtemplates.Localizer, w widget, _ Lookups) string { return w.Nombre }},
			{Label: "widgets.field.precio", Sort: "precio", Class: "numeric", Value: func(loc webtemplates.Localizer, w widget, _ Lookups) string {
				return webtemplates.Money(loc, w.Precio)
			}},
			{Label: "widgets.field.grupo", Value: func(_ webtemplates.Localizer, w widget, l Lookups) string { return l.LabelID("grupos", w.Grupo) }},
		},
		Selects: []Select{{Name: "grupo", Label: "widgets.field.grupo", Lookup: "grupos"}},
		Lookups: map[string]LookupFunc{
			"grupos": func(context.Context) ([]webtemplates.SelectOption, error) {
				return []webtemplates.SelectOption{{Value: "1", Label: "Herramientas"}, {Value: "2", Label: "Repuestos"}}, nil
			},
		},
		Fields: func(_ webtemplates.Localizer, w widget, l Lookups) []webtemplates.FormField {
			return []webtemplates.FormField{
				{Name: "nombre", Label: "Nombre", Value: w.Nombre, Required: true},
				{Name: "precio", Label: "Precio", Kind: webtemplates.FieldMoney, Value: w.Precio.String()},
				{Name: "grupo", Label: "Grupo", Kind: webtemplates.FieldSelect, Options: l.Options("grupos", fmt.Sprint(w.Grupo))},
				{Name: "activo", Label: "Activo", Kind: webtemplates.FieldCheckbox, Checked: w.Activo},
			}
		},
		Decode: func(form *FormReader, w *widget) {
			w.Nombre = form.String("nombre")
			w.Precio = form.Decimal("precio")
			w.Grupo = form.ID("grupo")
			w.Activo = form.Bool("activo")
		},
		Prepare: func(w *widget, _ bool) error {
			problems := domain.Problems{}
			problems.Required("nombre", w.Nombre)
			if w.Precio < 0 {
				problems.Add("precio", domain.KeyNonNegative)
			}
			return problems.Err()
		},
		Detail: func(_ webtemplates.Localizer, w widget, l Lookups) []webtemplates.DetailField {
			return []webtemplates.DetailField{
				{Label: "Nombre", Value: w.Nombre},
				{Label: "Grupo", Value: l.LabelID("grupos", w.Grupo)},
			}
		},
		Uploads: []Upload[widget]{{Field: "foto", Label: "widgets.field.foto", Policy: filestore.PolicyFoto, Current: func(w widget) string { return w.Foto }}},
	}
}
