package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds the query-string pagination contract shared by list endpoints:
// search (field:value or free text), sort (field:asc|desc), page, limit and
// is_page (false returns the full set in the same envelope).
type Params struct {
	Search string
	Sort   string
	Page   int
	Limit  int
	IsPage bool
}

// Sort is a parsed sort directive.
type Sort struct {
	Field     string
	Direction string
}

// Result carries the computed page metadata for a list response.
type Result struct {
	Page       int
	Limit      int
	TotalItems int64
	TotalPages int
}

// FromQuery extracts pagination parameters from a request query string.
func FromQuery(q url.Values) Params {
	params := Params{
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   strings.TrimSpace(q.Get("sort")),
		Page:   1,
		IsPage: true,
	}
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			params.Page = v
		}
	}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			params.Limit = v
		}
	}
	if raw := strings.TrimSpace(q.Get("is_page")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			params.IsPage = v
		}
	}
	return params
}

// Normalize enforces the configured default and maximum limits.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset converts the 1-based page into a row offset.
func (p Params) Offset() int {
	normalized := p.Normalize()
	return (normalized.Page - 1) * normalized.Limit
}

// SortOrDefault parses the sort directive, falling back to the provided
// default. Direction defaults to descending when omitted or unknown.
func (p Params) SortOrDefault(def Sort) Sort {
	raw := strings.TrimSpace(p.Sort)
	if raw == "" {
		return def
	}
	field, direction := raw, "desc"
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		field, direction = raw[:i], raw[i+1:]
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return def
	}
	if strings.EqualFold(direction, "asc") {
		direction = "asc"
	} else {
		direction = "desc"
	}
	return Sort{Field: field, Direction: direction}
}

// Clause renders the sort as an ORDER BY fragment, restricted to the allowed
// column map. Unknown fields fall back to the provided fragment.
func (s Sort) Clause(columns map[string]string, fallback string) string {
	column, ok := columns[s.Field]
	if !ok {
		return fallback
	}
	return column + " " + strings.ToUpper(s.Direction)
}

// SearchTerm splits the search input into a field/value pair. The second
// return is the free-text form when no field qualifier is present.
func (p Params) SearchTerm() (field string, value string) {
	raw := strings.TrimSpace(p.Search)
	if raw == "" {
		return "", ""
	}
	if i := strings.IndexByte(raw, ':'); i > 0 && i < len(raw)-1 {
		return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:])
	}
	return "", raw
}

// NewResult computes page metadata from the total row count.
func NewResult(params Params, total int64) Result {
	normalized := params.Normalize()
	totalPages := int((total + int64(normalized.Limit) - 1) / int64(normalized.Limit))
	return Result{
		Page:       normalized.Page,
		Limit:      normalized.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
