package listing

// PageSizeConfig bounds the page_size parameter.
type PageSizeConfig struct {
	Default int
	Max     int
}

// DefaultPageSize is the page size used when a schema does not set one.
var DefaultPageSize = PageSizeConfig{Default: 10, Max: 100}

// ClampPageSize applies defaults and upper bounds to a requested page size.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	if cfg.Default <= 0 {
		cfg.Default = DefaultPageSize.Default
	}
	if cfg.Max <= 0 {
		cfg.Max = DefaultPageSize.Max
	}
	if value <= 0 {
		return cfg.Default
	}
	if value > cfg.Max {
		return cfg.Max
	}
	return value
}

// Page is one window of a processed collection.
type Page[T any] struct {
	Items     []T
	Total     int
	Page      int
	PageSize  int
	PageCount int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.PageCount }

// First is the 1-based index of the first item on the page, 0 when empty.
func (p Page[T]) First() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Page-1)*p.PageSize + 1
}

// Last is the 1-based index of the last item on the page.
func (p Page[T]) Last() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.First() + len(p.Items) - 1
}

// Window returns up to n page numbers centred on the current page.
func (p Page[T]) Window(n int) []int {
	if n <= 0 || p.PageCount <= 0 {
		return nil
	}
	if n > p.PageCount {
		n = p.PageCount
	}
	start := p.Page - n/2
	if start < 1 {
		start = 1
	}
	if start+n-1 > p.PageCount {
		start = p.PageCount - n + 1
	}
	pages := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pages = append(pages, start+i)
	}
	return pages
}

// Paginate slices items into the requested page. The page count is at least
// one and the page is clamped into range.
func Paginate[T any](items []T, page int, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize.Default
	}
	total := len(items)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	window := make([]T, 0, end-start)
	if start < end {
		window = append(window, items[start:end]...)
	}
	return Page[T]{Items: window, Total: total, Page: page, PageSize: pageSize, PageCount: pageCount}
}

// Apply runs search, filter, ordering, and pagination over items in that
// order. The input slice is not modified.
func Apply[T any](schema Schema[T], items []T, q Query) (Page[T], error) {
	matches, err := Select(schema, items, q)
	if err != nil {
		return Page[T]{}, err
	}
	return Paginate(matches, q.Page, ClampPageSize(q.PageSize, schema.PageSize)), nil
}

// Select runs search, filter, and ordering without pagination.
func Select[T any](schema Schema[T], items []T, q Query) ([]T, error) {
	filter, err := CompileFilter(schema, q.Filter)
	if err != nil {
		return nil, err
	}
	specs, err := ParseOrderBy(schema, q.OrderBy)
	if err != nil {
		return nil, err
	}
	search := SearchPredicate(schema, q.Search)
	matches := make([]T, 0, len(items))
	for _, item := range items {
		if search(item) && filter(item) {
			matches = append(matches, item)
		}
	}
	SortItems(schema, matches, specs)
	return matches, nil
}
