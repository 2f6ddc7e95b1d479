// Package table searches, sorts and pages in-memory rows for dashboard listings.
package table

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Query struct {
	Search     string
	SortKey    string
	Descending bool
	Page       int
	PageSize   int
}

// Column exposes one field of T as text for searching and sorting.
type Column[T any] struct {
	Key        string
	Value      func(T) string
	Searchable bool
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ParseQuery reads ?search=&sort=&order=&page=&page_size=. Bad numbers fall back to defaults.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:     strings.TrimSpace(values.Get("search")),
		SortKey:    values.Get("sort"),
		Descending: strings.EqualFold(values.Get("order"), "desc"),
		Page:       1,
		PageSize:   DefaultPageSize,
	}
	if n, err := strconv.Atoi(values.Get("page")); err == nil {
		q.Page = n
	}
	if n, err := strconv.Atoi(values.Get("page_size")); err == nil {
		q.PageSize = n
	}
	return q
}

func (q Query) normalized() Query {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Apply filters items by a case-insensitive substring match on the searchable
// columns, stable-sorts by q.SortKey and returns the requested page. The input
// slice is not modified. An unknown sort key keeps the input order, and the
// page is clamped to the last page.
func Apply[T any](items []T, q Query, columns []Column[T]) Page[T] {
	q = q.normalized()

	rows := filter(items, q.Search, columns)
	if col, ok := findColumn(columns, q.SortKey); ok {
		sort.SliceStable(rows, func(i, j int) bool {
			c := compare(col.Value(rows[i]), col.Value(rows[j]))
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}

	total := len(rows)
	totalPages := int(math.Ceil(float64(total) / float64(q.PageSize)))
	page := q.Page
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * q.PageSize
	end := min(start+q.PageSize, total)
	if start > total {
		start = total
	}

	return Page[T]{
		Items:      rows[start:end],
		Page:       page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func filter[T any](items []T, search string, columns []Column[T]) []T {
	rows := make([]T, 0, len(items))
	needle := strings.ToLower(search)
	for _, item := range items {
		if needle == "" || matches(item, needle, columns) {
			rows = append(rows, item)
		}
	}
	return rows
}

func matches[T any](item T, needle string, columns []Column[T]) bool {
	for _, col := range columns {
		if col.Searchable && strings.Contains(strings.ToLower(col.Value(item)), needle) {
			return true
		}
	}
	return false
}

func findColumn[T any](columns []Column[T], key string) (Column[T], bool) {
	if key == "" {
		return Column[T]{}, false
	}
	for _, col := range columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// compare orders numerically when both sides parse as numbers, otherwise by
// case-insensitive text.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
