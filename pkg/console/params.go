package console

import "slices"

// QueryParams holds the common list options accepted by console endpoints.
type QueryParams struct {
	PageSize int
	Offset   int
	Sort     []string
	Where    string
	Pattern  string
	Filters  map[string][]string

	// filterOrder keeps filters in the order they were added.
	filterOrder []string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithPageSize sets the page size.
func (p *QueryParams) WithPageSize(pageSize int) *QueryParams {
	p.PageSize = pageSize

	return p
}

// WithOffset sets the offset of the first record.
func (p *QueryParams) WithOffset(offset int) *QueryParams {
	p.Offset = offset

	return p
}

// WithSort appends sort clauses, e.g. "created desc".
func (p *QueryParams) WithSort(sort ...string) *QueryParams {
	p.Sort = append(p.Sort, sort...)

	return p
}

// WithWhere sets the where clause.
func (p *QueryParams) WithWhere(where string) *QueryParams {
	p.Where = where

	return p
}

// WithPattern sets the name search pattern.
func (p *QueryParams) WithPattern(pattern string) *QueryParams {
	p.Pattern = pattern

	return p
}

// WithFilter appends values to a filter.
func (p *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if p.Filters == nil {
		p.Filters = make(map[string][]string)
	}

	if _, ok := p.Filters[key]; !ok {
		p.filterOrder = append(p.filterOrder, key)
	}

	p.Filters[key] = append(p.Filters[key], values...)

	return p
}

// ToQuery converts the parameters to a Query. Zero paging values and empty
// strings are left undefined.
func (p *QueryParams) ToQuery() *Query {
	query := NewQuery()
	if p == nil {
		return query
	}

	if p.PageSize > 0 {
		query.Set("pageSize", p.PageSize)
	}

	if p.Offset > 0 {
		query.Set("offset", p.Offset)
	}

	if len(p.Sort) > 0 {
		query.Set("sortBy", p.Sort)
	}

	if p.Where != "" {
		query.Set("where", p.Where)
	}

	if p.Pattern != "" {
		query.Set("pattern", p.Pattern)
	}

	for _, key := range p.filterKeys() {
		query.Set(key, p.Filters[key])
	}

	return query
}

// filterKeys returns filter keys in insertion order, followed by any keys set
// directly on the Filters map.
func (p *QueryParams) filterKeys() []string {
	keys := make([]string, 0, len(p.Filters))
	seen := make(map[string]bool, len(p.Filters))

	for _, key := range p.filterOrder {
		if _, ok := p.Filters[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	var rest []string

	for key := range p.Filters {
		if !seen[key] {
			rest = append(rest, key)
		}
	}

	slices.Sort(rest)

	return append(keys, rest...)
}
