package content

import "testing"

func article(slug, date string, tags ...string) Article {
	return Article{Record: Record{Slug: slug, Title: slug, Date: date, Tags: tags}}
}

func slugsOfResult(r Result[Article]) []string {
	return slugsOf(r.Items, func(a Article) string { return a.Slug })
}

func assertSlugs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("slugs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slugs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQueryTagFilterPreservesOrder(t *testing.T) {
	items := []Article{
		article("c", "2024-03-01", "go"),
		article("b", "2024-02-01", "web"),
		article("a", "2024-01-01", "go", "web"),
	}

	r := Query(items, Filter{Tag: "go"}, Page{Number: 1, Size: 10})
	assertSlugs(t, slugsOfResult(r), []string{"c", "a"})
	if r.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", r.TotalCount)
	}
}

func TestQueryTagExactMatch(t *testing.T) {
	items := []Article{article("a", "2024-01-01", "golang")}

	r := Query(items, Filter{Tag: "go"}, Page{Number: 1, Size: 10})
	if len(r.Items) != 0 {
		t.Errorf("tag matching must be exact, got %d items", len(r.Items))
	}
}

func TestQueryAllSentinels(t *testing.T) {
	items := []Article{
		article("a", "2024-01-01", "go"),
		article("b", "2024-02-01"),
	}

	for _, sentinel := range []string{"", "all", "全部"} {
		r := Query(items, Filter{Tag: sentinel}, Page{Number: 1, Size: 10})
		if len(r.Items) != 2 {
			t.Errorf("Tag=%q should not filter, got %d items", sentinel, len(r.Items))
		}
	}
}

func TestQueryTextCaseInsensitive(t *testing.T) {
	items := []Article{
		{Record: Record{Slug: "a", Title: "Learning Go", Date: "2024-01-01"}},
		{Record: Record{Slug: "b", Title: "Rust notes", Summary: "memory and GO routines", Date: "2024-02-01"}},
		{Record: Record{Slug: "c", Title: "Gardening", Date: "2024-03-01", Tags: []string{"golang"}}},
		{Record: Record{Slug: "d", Title: "Cooking", Date: "2024-04-01"}},
	}

	r := Query(items, Filter{Text: "gO"}, Page{Number: 1, Size: 10})
	// Matches title, summary and tag text alike.
	assertSlugs(t, slugsOfResult(r), []string{"a", "b", "c"})
}

func TestQueryYearFilter(t *testing.T) {
	items := []Article{
		article("a", "2024-06-01"),
		article("b", "2023-06-01"),
		article("c", "2024-01-01"),
	}

	r := Query(items, Filter{Year: "2024"}, Page{Number: 1, Size: 10})
	assertSlugs(t, slugsOfResult(r), []string{"a", "c"})
}

func TestQueryCategoryFilter(t *testing.T) {
	items := []Resource{
		{Record: Record{Slug: "a"}, Category: "编程"},
		{Record: Record{Slug: "b"}, Category: "工具"},
		{Record: Record{Slug: "c"}, Category: "编程"},
	}

	r := Query(items, Filter{Category: "编程"}, Page{Number: 1, Size: 10})
	if len(r.Items) != 2 {
		t.Errorf("category filter count = %d, want 2", len(r.Items))
	}

	all := Query(items, Filter{Category: "全部"}, Page{Number: 1, Size: 10})
	if len(all.Items) != 3 {
		t.Errorf("all-sentinel category should not filter, got %d", len(all.Items))
	}
}

func TestQueryFiltersCombineAnd(t *testing.T) {
	items := []Article{
		article("a", "2024-01-01", "go"),
		article("b", "2024-02-01", "go"),
		article("c", "2023-02-01", "go"),
		article("d", "2024-03-01", "web"),
	}
	items[0].Title = "intro"
	items[1].Title = "advanced"
	items[2].Title = "intro"

	r := Query(items, Filter{Tag: "go", Year: "2024", Text: "intro"}, Page{Number: 1, Size: 10})
	assertSlugs(t, slugsOfResult(r), []string{"a"})
}

func TestQueryPagination(t *testing.T) {
	var items []Article
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		items = append(items, article(s, "2024-01-01"))
	}

	page1 := Query(items, Filter{}, Page{Number: 1, Size: 5})
	if len(page1.Items) != 5 || page1.TotalPages != 3 || page1.TotalCount != 12 {
		t.Errorf("page 1: len=%d totalPages=%d totalCount=%d", len(page1.Items), page1.TotalPages, page1.TotalCount)
	}

	page3 := Query(items, Filter{}, Page{Number: 3, Size: 5})
	assertSlugs(t, slugsOfResult(page3), []string{"k", "l"})

	beyond := Query(items, Filter{}, Page{Number: 999, Size: 5})
	if beyond.Items == nil || len(beyond.Items) != 0 {
		t.Errorf("beyond-range page should be an empty slice, got %v", beyond.Items)
	}
	if beyond.TotalCount != 12 || beyond.TotalPages != 3 {
		t.Errorf("beyond-range page keeps totals: count=%d pages=%d", beyond.TotalCount, beyond.TotalPages)
	}
}

func TestQueryNormalizesPageInput(t *testing.T) {
	items := []Article{article("a", "2024-01-01"), article("b", "2024-01-02")}

	zero := Query(items, Filter{}, Page{Number: 0, Size: 5})
	if len(zero.Items) != 2 {
		t.Errorf("page 0 should normalize to page 1, got %d items", len(zero.Items))
	}

	negative := Query(items, Filter{}, Page{Number: -3, Size: 0})
	if len(negative.Items) != 2 {
		t.Errorf("negative page and zero size should normalize, got %d items", len(negative.Items))
	}
}

func TestQueryEmptyInput(t *testing.T) {
	r := Query([]Article{}, Filter{}, Page{Number: 1, Size: 5})
	if r.TotalCount != 0 || r.TotalPages != 1 {
		t.Errorf("empty input: count=%d pages=%d, want 0 and 1", r.TotalCount, r.TotalPages)
	}
}

func TestRelatedRanksBySharedTags(t *testing.T) {
	anchor := article("x", "2024-01-01", "go", "web", "db")
	candidates := []Article{
		article("one-shared-early", "2024-05-01", "db"),
		article("two-shared", "2024-04-01", "go", "web"),
		article("one-shared-late", "2024-03-01", "web"),
		article("none", "2024-02-01", "rust"),
		anchor,
	}

	got := Related(anchor, candidates, 3)
	want := []string{"two-shared", "one-shared-early", "one-shared-late"}
	assertSlugs(t, slugsOf(got, func(a Article) string { return a.Slug }), want)
}

func TestRelatedLimitsToN(t *testing.T) {
	anchor := article("x", "2024-01-01", "go")
	var candidates []Article
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, article(s, "2024-01-01", "go"))
	}

	got := Related(anchor, candidates, 3)
	if len(got) != 3 {
		t.Errorf("Related should cap at n, got %d", len(got))
	}

	defaulted := Related(anchor, candidates, 0)
	if len(defaulted) != 3 {
		t.Errorf("n<=0 should default to 3, got %d", len(defaulted))
	}
}

func TestRelatedExcludesAnchor(t *testing.T) {
	anchor := article("x", "2024-01-01", "go")
	got := Related(anchor, []Article{anchor}, 3)
	if len(got) != 0 {
		t.Errorf("the anchor itself must never be related, got %d", len(got))
	}
}
