package crud

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	webtemplates "github.com/nominaweb/nominaweb/internal/services/web/templates"
)

// Lister is a collection that can be listed for select options.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// LookupFunc loads select options for a foreign key.
type LookupFunc func(ctx context.Context) ([]webtemplates.SelectOption, error)

// Lookups holds loaded select options by name.
type Lookups map[string][]webtemplates.SelectOption

// Options returns a copy of the named options with value marked selected.
func (l Lookups) Options(name, value string) []webtemplates.SelectOption {
	return webtemplates.MarkSelected(l[name], value)
}

// Label returns the option label for value, or value itself when unknown.
func (l Lookups) Label(name, value string) string {
	for _, option := range l[name] {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}

// LabelID is Label for a numeric reference. Zero renders as "".
func (l Lookups) LabelID(name string, id int64) string {
	if id <= 0 {
		return ""
	}
	return l.Label(name, strconv.FormatInt(id, 10))
}

// LoadLookups runs every lookup concurrently and fails on the first error.
func LoadLookups(ctx context.Context, funcs map[string]LookupFunc) (Lookups, error) {
	out := Lookups{}
	if len(funcs) == 0 {
		return out, nil
	}
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		load := funcs[name]
		g.Go(func() error {
			options, err := load(gctx)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = options
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// OptionsFrom maps records to select options.
func OptionsFrom[T any](items []T, value func(T) int64, label func(T) string) []webtemplates.SelectOption {
	options := make([]webtemplates.SelectOption, 0, len(items))
	for _, item := range items {
		options = append(options, webtemplates.SelectOption{
			Value: strconv.FormatInt(value(item), 10),
			Label: label(item),
		})
	}
	return options
}

// ListLookup adapts a collection into a LookupFunc. A nil lister yields no
// options.
func ListLookup[T any](lister Lister[T], value func(T) int64, label func(T) string) LookupFunc {
	return GroupedLookup(lister, value, label, nil)
}

// GroupedLookup is ListLookup with each option tagged by its parent key.
func GroupedLookup[T any](lister Lister[T], value func(T) int64, label func(T) string, group func(T) int64) LookupFunc {
	return func(ctx context.Context) ([]webtemplates.SelectOption, error) {
		if lister == nil {
			return []webtemplates.SelectOption{}, nil
		}
		items, err := lister.List(ctx)
		if err != nil {
			return nil, err
		}
		options := OptionsFrom(items, value, label)
		if group != nil {
			for idx, item := range items {
				options[idx].Group = strconv.FormatInt(group(item), 10)
			}
		}
		return options, nil
	}
}

// StaticOptions builds options for fixed choices labelled by
// "<namespace>.<value>" keys.
func StaticOptions(loc webtemplates.Localizer, namespace string, values []string) []webtemplates.SelectOption {
	options := make([]webtemplates.SelectOption, 0, len(values))
	for _, value := range values {
		options = append(options, webtemplates.SelectOption{Value: value, Label: webtemplates.T(loc, namespace+"."+value)})
	}
	return options
}
