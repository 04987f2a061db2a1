package listing

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// Predicate reports whether an item matches a compiled filter.
type Predicate[T any] func(T) bool

// CompileFilter parses an AIP-160 expression against the schema and returns
// a predicate. An empty expression matches everything.
func CompileFilter[T any](schema Schema[T], raw string) (Predicate[T], error) {
	if strings.TrimSpace(raw) == "" {
		return func(T) bool { return true }, nil
	}
	decls, err := schema.Declarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	filter, err := filtering.ParseFilterString(normalizeLiterals(schema, raw), decls)
	if err != nil {
		return nil, invalidFilter(err)
	}
	if filter.CheckedExpr == nil || filter.CheckedExpr.GetExpr() == nil {
		return func(T) bool { return true }, nil
	}
	predicate, err := compileExpr(schema, filter.CheckedExpr.GetExpr())
	if err != nil {
		return nil, invalidFilter(err)
	}
	return predicate, nil
}

// normalizeLiterals rewrites literals the AIP checker would reject for the
// compared field's type: quoted dates on timestamp fields become timestamp()
// calls and whole numbers on float fields gain a fractional part. Input that
// does not lex is returned unchanged so the parser reports the error.
func normalizeLiterals[T any](schema Schema[T], raw string) string {
	tokens, ok := lexFilter(raw)
	if !ok {
		return raw
	}
	values := make([]string, len(tokens))
	for i, token := range tokens {
		values[i] = token.Value
	}
	for i, token := range tokens {
		if !token.Type.IsComparator() {
			continue
		}
		prev := skipWhitespace(tokens, i-1, -1)
		if prev < 0 || tokens[prev].Type != filtering.TokenTypeText {
			continue
		}
		field, ok := schema.Field(tokens[prev].Value)
		if !ok {
			continue
		}
		next := skipWhitespace(tokens, i+1, 1)
		if next >= len(tokens) {
			continue
		}
		switch field.Type {
		case TypeTimestamp:
			if tokens[next].Type != filtering.TokenTypeString {
				continue
			}
			text, err := tokens[next].Unquote()
			if err != nil {
				continue
			}
			parsed, err := parseTime(text)
			if err != nil {
				continue
			}
			values[next] = `timestamp("` + parsed.Format(time.RFC3339Nano) + `")`
		case TypeFloat:
			if tokens[next].Type == filtering.TokenTypeMinus {
				next++
			}
			if next >= len(tokens) || tokens[next].Type != filtering.TokenTypeNumber {
				continue
			}
			if after := next + 1; after < len(tokens) && (tokens[after].Type == filtering.TokenTypeDot || tokens[after].Type == filtering.TokenTypeText) {
				continue
			}
			values[next] += ".0"
		}
	}
	return strings.Join(values, "")
}

func lexFilter(raw string) ([]filtering.Token, bool) {
	var lexer filtering.Lexer
	lexer.Init(raw)
	var tokens []filtering.Token
	for {
		token, err := lexer.Lex()
		if errors.Is(err, io.EOF) {
			return tokens, true
		}
		if err != nil {
			return nil, false
		}
		tokens = append(tokens, token)
	}
}

func skipWhitespace(tokens []filtering.Token, i, step int) int {
	for i >= 0 && i < len(tokens) && tokens[i].Type == filtering.TokenTypeWhitespace {
		i += step
	}
	return i
}

func invalidFilter(err error) error {
	return apperrors.Error{
		Kind:    apperrors.KindInvalidInput,
		Key:     "core.error.invalid_filter",
		Message: "invalid filter: " + err.Error(),
		Cause:   err,
	}
}

func compileExpr[T any](schema Schema[T], e *expr.Expr) (Predicate[T], error) {
	switch kind := e.GetExprKind().(type) {
	case *expr.Expr_CallExpr:
		return compileCall(schema, kind.CallExpr)
	case *expr.Expr_IdentExpr:
		// A bare boolean identifier, e.g. `activo`.
		field, ok := schema.Field(kind.IdentExpr.GetName())
		if !ok || field.Type != TypeBool {
			return nil, fmt.Errorf("identifier %q is not a boolean field", kind.IdentExpr.GetName())
		}
		return func(item T) bool {
			value, _ := field.Value(item).(bool)
			return value
		}, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func compileCall[T any](schema Schema[T], call *expr.Expr_Call) (Predicate[T], error) {
	args := call.GetArgs()
	switch call.GetFunction() {
	case "AND", "_&&_", "FUZZY":
		return compileJunction(schema, args, true)
	case "OR", "_||_":
		return compileJunction(schema, args, false)
	case "NOT", "!_", "-":
		if len(args) != 1 {
			return nil, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := compileExpr(schema, args[0])
		if err != nil {
			return nil, err
		}
		return func(item T) bool { return !inner(item) }, nil
	case "=", "_==_":
		return compileComparison(schema, args, opEquals)
	case "!=", "_!=_":
		return compileComparison(schema, args, opNotEquals)
	case "<", "_<_":
		return compileComparison(schema, args, opLess)
	case "<=", "_<=_":
		return compileComparison(schema, args, opLessEquals)
	case ">", "_>_":
		return compileComparison(schema, args, opGreater)
	case ">=", "_>=_":
		return compileComparison(schema, args, opGreaterEquals)
	case ":":
		return compileComparison(schema, args, opHas)
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.GetFunction())
	}
}

func compileJunction[T any](schema Schema[T], args []*expr.Expr, and bool) (Predicate[T], error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("logical operator requires 2 arguments")
	}
	parts := make([]Predicate[T], 0, len(args))
	for _, arg := range args {
		part, err := compileExpr(schema, arg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if and {
		return func(item T) bool {
			for _, part := range parts {
				if !part(item) {
					return false
				}
			}
			return true
		}, nil
	}
	return func(item T) bool {
		for _, part := range parts {
			if part(item) {
				return true
			}
		}
		return false
	}, nil
}

type operator int

const (
	opEquals operator = iota
	opNotEquals
	opLess
	opLessEquals
	opGreater
	opGreaterEquals
	opHas
)

func compileComparison[T any](schema Schema[T], args []*expr.Expr, op operator) (Predicate[T], error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}
	ident := args[0].GetIdentExpr()
	if ident == nil {
		return nil, fmt.Errorf("expected field name on the left of comparison")
	}
	field, ok := schema.Field(ident.GetName())
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", ident.GetName())
	}
	literal, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}
	match, err := comparator(field.Type, literal, op)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field.Name, err)
	}
	return func(item T) bool { return match(field.Value(item)) }, nil
}

func comparator(fieldType FieldType, literal any, op operator) (func(any) bool, error) {
	switch fieldType {
	case TypeString:
		want, ok := literal.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value, got %T", literal)
		}
		return stringComparator(want, op), nil
	case TypeInt, TypeFloat:
		want, ok := toFloat(literal)
		if !ok {
			return nil, fmt.Errorf("expected numeric value, got %T", literal)
		}
		return func(value any) bool {
			got, ok := toFloat(value)
			return ok && orderMatches(compareFloat(got, want), op)
		}, nil
	case TypeBool:
		want, ok := literal.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean value, got %T", literal)
		}
		if op != opEquals && op != opNotEquals {
			return nil, fmt.Errorf("booleans only support = and !=")
		}
		return func(value any) bool {
			got, _ := value.(bool)
			return (got == want) == (op == opEquals)
		}, nil
	case TypeTimestamp:
		want, err := toTime(literal)
		if err != nil {
			return nil, err
		}
		return func(value any) bool {
			got, ok := value.(time.Time)
			if !ok || got.IsZero() {
				return op == opNotEquals
			}
			return orderMatches(got.Compare(want), op)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported field type %d", fieldType)
	}
}

func stringComparator(want string, op operator) func(any) bool {
	foldedWant := Fold(want)
	return func(value any) bool {
		got, _ := value.(string)
		switch op {
		case opHas:
			return strings.Contains(Fold(got), foldedWant)
		case opEquals:
			return wildcardEquals(got, want)
		case opNotEquals:
			return !wildcardEquals(got, want)
		default:
			return orderMatches(strings.Compare(got, want), op)
		}
	}
}

// wildcardEquals implements the AIP-160 leading/trailing `*` string match.
func wildcardEquals(got, want string) bool {
	prefix := strings.HasSuffix(want, "*")
	suffix := strings.HasPrefix(want, "*")
	core := strings.Trim(want, "*")
	switch {
	case prefix && suffix:
		return strings.Contains(got, core)
	case prefix:
		return strings.HasPrefix(got, core)
	case suffix:
		return strings.HasSuffix(got, core)
	default:
		return got == want
	}
}

func orderMatches(cmp int, op operator) bool {
	switch op {
	case opEquals, opHas:
		return cmp == 0
	case opNotEquals:
		return cmp != 0
	case opLess:
		return cmp < 0
	case opLessEquals:
		return cmp <= 0
	case opGreater:
		return cmp > 0
	case opGreaterEquals:
		return cmp >= 0
	default:
		return false
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTime(v)
	default:
		return time.Time{}, fmt.Errorf("expected timestamp value, got %T", value)
	}
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp format: %s", raw)
}

func extractValue(e *expr.Expr) (any, error) {
	switch kind := e.GetExprKind().(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.GetFunction() == "timestamp" && len(kind.CallExpr.GetArgs()) == 1 {
			raw, err := extractConstValue(kind.CallExpr.GetArgs()[0].GetConstExpr())
			if err != nil {
				return nil, err
			}
			text, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("timestamp argument must be a string")
			}
			return parseTime(text)
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.GetFunction())
	case *expr.Expr_IdentExpr:
		// Unquoted single words are parsed as identifiers; treat them as text.
		return kind.IdentExpr.GetName(), nil
	default:
		return nil, fmt.Errorf("expected constant value, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}
	switch kind := c.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}
