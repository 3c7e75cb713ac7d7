// Package txfilter is the shared list-filtering engine behind the card
// transaction, referral commission, and admin card screens. Predicates are
// ANDed; date ranges are evaluated against "now" at call time, never
// memoized. The input slice is never mutated.
package txfilter

import (
	"sort"
	"strings"
	"time"
)

// DateRange selects the window a timestamp must fall into.
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// ParseDateRange normalizes a query-string value; anything unknown or empty
// means no date filtering.
func ParseDateRange(s string) DateRange {
	switch DateRange(strings.ToLower(s)) {
	case RangeToday:
		return RangeToday
	case RangeWeek:
		return RangeWeek
	case RangeMonth:
		return RangeMonth
	default:
		return RangeAll
	}
}

// SortDirection orders a sorted result ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Spec describes one filter invocation. The zero value filters nothing and
// returns the input unchanged.
type Spec struct {
	Category  string
	DateRange DateRange
	Query     string
	SortBy    string
	SortDir   SortDirection
}

func (s Spec) filtersCategory() bool {
	return s.Category != "" && !strings.EqualFold(s.Category, "all")
}

func (s Spec) filtersDate() bool {
	return s.DateRange != "" && s.DateRange != RangeAll
}

func (s Spec) filtersQuery() bool {
	return strings.TrimSpace(s.Query) != ""
}

func (s Spec) sorts() bool {
	return s.SortBy != ""
}

// isZero reports whether the spec is a no-op.
func (s Spec) isZero() bool {
	return !s.filtersCategory() && !s.filtersDate() && !s.filtersQuery() && !s.sorts()
}

// Adapter tells the engine how to read one entity shape. Category and
// Timestamp may be nil when the entity has no such field; SearchFields may
// be nil when free-text search does not apply.
type Adapter[T any] struct {
	Category     func(T) string
	Timestamp    func(T) time.Time
	SearchFields func(T) []string

	// SortKeys maps a sortBy name to a three-way comparison. Unknown names
	// leave the input order untouched.
	SortKeys map[string]func(a, b T) int
}

// Filter applies the spec and returns the matching items, sorted if the
// spec asks for it. The empty spec returns the input slice itself: same
// order, same backing array.
func Filter[T any](items []T, spec Spec, ad Adapter[T]) []T {
	if spec.isZero() {
		return items
	}

	now := time.Now()
	out := make([]T, 0, len(items))
	for _, it := range items {
		if spec.filtersCategory() && ad.Category != nil && ad.Category(it) != spec.Category {
			continue
		}
		if spec.filtersDate() && ad.Timestamp != nil && !inRange(ad.Timestamp(it), spec.DateRange, now) {
			continue
		}
		if spec.filtersQuery() && !matchesQuery(it, spec.Query, ad) {
			continue
		}
		out = append(out, it)
	}

	if spec.sorts() {
		if cmp, ok := ad.SortKeys[spec.SortBy]; ok {
			desc := spec.SortDir == SortDesc
			sort.SliceStable(out, func(i, j int) bool {
				c := cmp(out[i], out[j])
				if desc {
					return c > 0
				}
				return c < 0
			})
		}
	}

	return out
}

// inRange checks one timestamp against the window ending at now.
func inRange(ts time.Time, r DateRange, now time.Time) bool {
	switch r {
	case RangeToday:
		y1, m1, d1 := now.Date()
		y2, m2, d2 := ts.In(now.Location()).Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case RangeWeek:
		return !ts.Before(now.Add(-7 * 24 * time.Hour))
	case RangeMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return !ts.Before(monthStart)
	default:
		return true
	}
}

// matchesQuery reports whether any designated searchable field contains the
// query, case-insensitively.
func matchesQuery[T any](it T, query string, ad Adapter[T]) bool {
	if ad.SearchFields == nil {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	for _, f := range ad.SearchFields(it) {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Three-way comparison helpers for adapter sort keys.

// CompareString orders strings case-insensitively.
func CompareString(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	default:
		return 0
	}
}

// CompareFloat64 orders floats ascending.
func CompareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareTime orders timestamps ascending.
func CompareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
