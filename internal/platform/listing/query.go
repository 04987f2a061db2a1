// Package listing implements the in-memory list pipeline used by every list
// surface: free-text search, AIP-160 filtering, AIP-132 ordering, and
// pagination, applied in that order.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names shared by web pages, the CLI, and MCP tools.
const (
	ParamSearch   = "q"
	ParamFilter   = "filter"
	ParamOrderBy  = "order_by"
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// Query describes one list request.
type Query struct {
	Search   string
	Filter   string
	OrderBy  string
	Page     int
	PageSize int
}

// QueryFromValues reads a Query from URL query parameters. Malformed numbers
// are treated as absent so pagination falls back to its defaults.
func QueryFromValues(values url.Values) Query {
	return Query{
		Search:   strings.TrimSpace(values.Get(ParamSearch)),
		Filter:   strings.TrimSpace(values.Get(ParamFilter)),
		OrderBy:  strings.TrimSpace(values.Get(ParamOrderBy)),
		Page:     atoiOrZero(values.Get(ParamPage)),
		PageSize: atoiOrZero(values.Get(ParamPageSize)),
	}
}

// Values encodes the query back into URL parameters, omitting defaults.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set(ParamSearch, q.Search)
	}
	if q.Filter != "" {
		values.Set(ParamFilter, q.Filter)
	}
	if q.OrderBy != "" {
		values.Set(ParamOrderBy, q.OrderBy)
	}
	if q.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set(ParamPageSize, strconv.Itoa(q.PageSize))
	}
	return values
}

// WithPage returns a copy of q pointing at page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// AndFilter joins extra AIP-160 terms onto the query filter with AND.
func (q Query) AndFilter(terms ...string) Query {
	parts := make([]string, 0, len(terms)+1)
	if strings.TrimSpace(q.Filter) != "" {
		parts = append(parts, "("+strings.TrimSpace(q.Filter)+")")
	}
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			parts = append(parts, term)
		}
	}
	q.Filter = strings.Join(parts, " AND ")
	return q
}

// EqualsTerm renders `field = value` with string values quoted.
func EqualsTerm(field string, value string, quote bool) string {
	value = strings.TrimSpace(value)
	if field == "" || value == "" {
		return ""
	}
	if quote {
		return field + " = " + strconv.Quote(value)
	}
	return field + " = " + value
}

func atoiOrZero(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
