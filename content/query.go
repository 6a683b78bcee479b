package content

import "strings"

// Filterable is satisfied by every content kind via the embedded Record (or,
// for albums, an adapter). The query engine only ever sees this shape.
type Filterable interface {
	Base() Record
	FilterCategory() string
}

// Filter holds the predicates combined with logical AND. Zero values mean
// "no filtering" for that predicate, as do the explicit "all" sentinels the
// UI sends.
type Filter struct {
	Text     string // case-insensitive substring over title, summary and tags
	Tag      string // exact membership in the record's tag set
	Year     string // exact match on the year component of the date
	Category string // exact match on the kind's category, where it has one
}

// Page selects a 1-indexed page of fixed size. Invalid input is normalized
// to safe defaults rather than rejected: a non-positive number becomes page
// 1, a non-positive size becomes DefaultPageSize.
type Page struct {
	Number int
	Size   int
}

// Page size constants observed across the list views.
const (
	DefaultPageSize  = 5  // articles, notes
	ResourcePageSize = 10 // resources, albums
)

// Result is one page of a filtered collection. An empty Items slice is a
// normal outcome, distinct from an error.
type Result[T Filterable] struct {
	Items      []T
	TotalCount int
	TotalPages int
}

// Query filters items with f, then returns the requested page. Items must
// already be in the kind's canonical order; filtering never reorders, so the
// page preserves the relative order of the input.
func Query[T Filterable](items []T, f Filter, p Page) Result[T] {
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if matches(it, f) {
			filtered = append(filtered, it)
		}
	}

	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Number < 1 {
		p.Number = 1
	}

	total := len(filtered)
	totalPages := (total + p.Size - 1) / p.Size
	if totalPages < 1 {
		totalPages = 1
	}

	start := (p.Number - 1) * p.Size
	if start >= total {
		return Result[T]{Items: []T{}, TotalCount: total, TotalPages: totalPages}
	}
	end := start + p.Size
	if end > total {
		end = total
	}
	return Result[T]{Items: filtered[start:end], TotalCount: total, TotalPages: totalPages}
}

// Related ranks candidates by the number of tags they share with anchor,
// descending, excluding the anchor itself and anything with no shared tags.
// Ties keep the input (canonical) order. At most n records are returned.
func Related[T Filterable](anchor T, candidates []T, n int) []T {
	base := anchor.Base()
	anchorTags := make(map[string]struct{}, len(base.Tags))
	for _, t := range base.Tags {
		anchorTags[t] = struct{}{}
	}

	type scored struct {
		item  T
		count int
	}
	var ranked []scored
	for _, c := range candidates {
		cb := c.Base()
		if cb.Slug == base.Slug {
			continue
		}
		shared := 0
		for _, t := range cb.Tags {
			if _, ok := anchorTags[t]; ok {
				shared++
			}
		}
		if shared > 0 {
			ranked = append(ranked, scored{item: c, count: shared})
		}
	}

	// Stable insertion keeps canonical order within equal counts.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].count > ranked[j-1].count; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if n <= 0 {
		n = 3
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]T, len(ranked))
	for i, s := range ranked {
		out[i] = s.item
	}
	return out
}

func matches[T Filterable](it T, f Filter) bool {
	r := it.Base()

	if !isAllSentinel(f.Tag) {
		found := false
		for _, t := range r.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Year != "" && yearOf(r.Date) != f.Year {
		return false
	}

	if !isAllSentinel(f.Category) && it.FilterCategory() != f.Category {
		return false
	}

	if f.Text != "" {
		q := strings.ToLower(f.Text)
		haystack := strings.ToLower(r.Title + "\n" + r.Summary + "\n" + strings.Join(r.Tags, " "))
		if !strings.Contains(haystack, q) {
			return false
		}
	}

	return true
}

// isAllSentinel reports whether the value means "no filtering". The UI sends
// either an empty string or the all sentinel in one of its two spellings.
func isAllSentinel(v string) bool {
	return v == "" || v == "all" || v == "全部"
}
