package listing

import (
	"sort"
	"strings"
	"time"

	"go.einride.tech/aip/ordering"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// OrderSpec is one parsed order_by clause.
type OrderSpec struct {
	Field string
	Desc  bool
}

// ParseOrderBy parses an AIP-132 order_by expression and validates that every
// path names a schema field. An empty expression falls back to the schema
// default.
func ParseOrderBy[T any](schema Schema[T], raw string) ([]OrderSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = strings.TrimSpace(schema.DefaultOrder)
	}
	if raw == "" {
		return nil, nil
	}
	var orderBy ordering.OrderBy
	if err := orderBy.UnmarshalString(raw); err != nil {
		return nil, invalidOrder(err)
	}
	if err := orderBy.ValidateForPaths(schema.FieldNames()...); err != nil {
		return nil, invalidOrder(err)
	}
	specs := make([]OrderSpec, 0, len(orderBy.Fields))
	for _, field := range orderBy.Fields {
		specs = append(specs, OrderSpec{Field: field.Path, Desc: field.Desc})
	}
	return specs, nil
}

func invalidOrder(err error) error {
	return apperrors.Error{
		Kind:    apperrors.KindInvalidInput,
		Key:     "core.error.invalid_order",
		Message: "invalid order_by: " + err.Error(),
		Cause:   err,
	}
}

// SortItems orders items in place. Equal keys keep their input order.
func SortItems[T any](schema Schema[T], items []T, specs []OrderSpec) {
	if len(specs) == 0 || len(items) < 2 {
		return
	}
	fields := make([]Field[T], 0, len(specs))
	for _, spec := range specs {
		field, _ := schema.Field(spec.Field)
		fields = append(fields, field)
	}
	sort.SliceStable(items, func(i, j int) bool {
		for idx, spec := range specs {
			field := fields[idx]
			if field.Value == nil {
				continue
			}
			cmp := compareValues(field.Value(items[i]), field.Value(items[j]))
			if cmp == 0 {
				continue
			}
			if spec.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	switch left := a.(type) {
	case string:
		right, _ := b.(string)
		return strings.Compare(Fold(left), Fold(right))
	case bool:
		right, _ := b.(bool)
		switch {
		case left == right:
			return 0
		case !left:
			return -1
		default:
			return 1
		}
	case time.Time:
		right, _ := b.(time.Time)
		return left.Compare(right)
	default:
		l, lok := toFloat(a)
		r, rok := toFloat(b)
		if !lok || !rok {
			return 0
		}
		return compareFloat(l, r)
	}
}
