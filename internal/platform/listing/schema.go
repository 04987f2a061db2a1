package listing

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FieldType classifies a field for filter type-checking and ordering.
type FieldType int

const (
	TypeString FieldType = iota
	// TypeInt covers identifiers, counts, and whole-peso amounts.
	TypeInt
	TypeFloat
	TypeBool
	TypeTimestamp
)

// Field exposes one attribute of T to the list pipeline. Value must return
// string, int64, float64, bool, or time.Time according to Type.
type Field[T any] struct {
	Name       string
	Type       FieldType
	Value      func(T) any
	Searchable bool
}

// Schema declares how a collection of T can be searched, filtered, ordered,
// and paginated.
type Schema[T any] struct {
	Fields       []Field[T]
	DefaultOrder string
	PageSize     PageSizeConfig
}

// StringField builds a string field.
func StringField[T any](name string, searchable bool, value func(T) string) Field[T] {
	return Field[T]{Name: name, Type: TypeString, Searchable: searchable, Value: func(item T) any { return value(item) }}
}

// IntField builds an integer field.
func IntField[T any](name string, value func(T) int64) Field[T] {
	return Field[T]{Name: name, Type: TypeInt, Value: func(item T) any { return value(item) }}
}

// FloatField builds a floating point field.
func FloatField[T any](name string, value func(T) float64) Field[T] {
	return Field[T]{Name: name, Type: TypeFloat, Value: func(item T) any { return value(item) }}
}

// BoolField builds a boolean field.
func BoolField[T any](name string, value func(T) bool) Field[T] {
	return Field[T]{Name: name, Type: TypeBool, Value: func(item T) any { return value(item) }}
}

// TimeField builds a timestamp field.
func TimeField[T any](name string, value func(T) time.Time) Field[T] {
	return Field[T]{Name: name, Type: TypeTimestamp, Value: func(item T) any { return value(item) }}
}

// Field looks up a declared field by name.
func (s Schema[T]) Field(name string) (Field[T], bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field[T]{}, false
}

// FieldNames returns declared field names in declaration order.
func (s Schema[T]) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Declarations returns the AIP-160 declarations for the schema fields.
func (s Schema[T]) Declarations() (*filtering.Declarations, error) {
	options := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, field := range s.Fields {
		if strings.TrimSpace(field.Name) == "" || field.Value == nil {
			return nil, fmt.Errorf("field declaration is incomplete: %q", field.Name)
		}
		options = append(options, filtering.DeclareIdent(field.Name, field.Type.filterType()))
	}
	return filtering.NewDeclarations(options...)
}

func (t FieldType) filterType() *expr.Type {
	switch t {
	case TypeInt:
		return filtering.TypeInt
	case TypeFloat:
		return filtering.TypeFloat
	case TypeBool:
		return filtering.TypeBool
	case TypeTimestamp:
		return filtering.TypeTimestamp
	default:
		return filtering.TypeString
	}
}
