package content

import (
	"sort"
	"sync"
	"unicode"

	"github.com/labstack/gommon/log"
)

// WordsPerMinute is the fixed constant used to derive reading time. It is
// deliberately configuration, not something discovered from content, so the
// value is stable across calls and cached page metadata never drifts.
const WordsPerMinute = 200

// Dirs names the kind directories under the content root.
type Dirs struct {
	Articles  string
	Notes     string
	Resources string
	Albums    string // path of the gallery JSON document
}

// DefaultDirs mirrors the layout scaffolded by `inkwell new`.
func DefaultDirs() Dirs {
	return Dirs{
		Articles:  "posts",
		Notes:     "notes",
		Resources: "resources",
		Albums:    "images/albums.json",
	}
}

// Repository aggregates reader output per content kind and exposes
// lookup-by-slug and list-all operations with the kind's canonical order.
//
// Listings are served from a process-wide cache invalidated by a directory
// fingerprint, so the observable contract stays read-through: editing a file
// on disk is visible on the next request without a restart.
type Repository struct {
	reader *Reader
	albums *AlbumStore
	dirs   Dirs
	log    *log.Logger

	mu        sync.RWMutex
	articles  kindCache[Article]
	notes     kindCache[Note]
	resources kindCache[Resource]
}

type kindCache[T any] struct {
	fingerprint string
	items       []T
	valid       bool
}

// NewRepository builds a Repository over the given reader and album store.
func NewRepository(reader *Reader, albums *AlbumStore, dirs Dirs) *Repository {
	return &Repository{
		reader: reader,
		albums: albums,
		dirs:   dirs,
		log:    log.New("content"),
	}
}

// Articles returns all published articles sorted by date descending.
func (r *Repository) Articles() ([]Article, error) {
	return loadKind(r, r.dirs.Articles, &r.articles, buildArticle, func(items []Article) {
		sortByDateDesc(items, func(a Article) (string, string) { return a.Date, a.Slug })
	})
}

// Article returns a single article by slug, or ErrNotFound. Lookup goes
// through the listing so a front-matter slug override resolves the same way
// it is linked, and files the listing skipped stay invisible here too.
func (r *Repository) Article(slug string) (Article, error) {
	items, err := r.Articles()
	if err != nil {
		return Article{}, err
	}
	return findBySlug(items, slug, func(a Article) string { return a.Slug })
}

// ArticleSlugs returns the slug of every published article.
func (r *Repository) ArticleSlugs() ([]string, error) {
	items, err := r.Articles()
	if err != nil {
		return nil, err
	}
	return slugsOf(items, func(a Article) string { return a.Slug }), nil
}

// Notes returns all published notes sorted by date descending.
func (r *Repository) Notes() ([]Note, error) {
	return loadKind(r, r.dirs.Notes, &r.notes, buildNote, func(items []Note) {
		sortByDateDesc(items, func(n Note) (string, string) { return n.Date, n.Slug })
	})
}

// Note returns a single note by slug, or ErrNotFound.
func (r *Repository) Note(slug string) (Note, error) {
	items, err := r.Notes()
	if err != nil {
		return Note{}, err
	}
	return findBySlug(items, slug, func(n Note) string { return n.Slug })
}

// NoteSlugs returns the slug of every published note.
func (r *Repository) NoteSlugs() ([]string, error) {
	items, err := r.Notes()
	if err != nil {
		return nil, err
	}
	return slugsOf(items, func(n Note) string { return n.Slug }), nil
}

// Resources returns all resources in source order: file name order, the
// deterministic stand-in for "no implicit sort".
func (r *Repository) Resources() ([]Resource, error) {
	return loadKind(r, r.dirs.Resources, &r.resources, buildResource, nil)
}

// Resource returns a single resource by slug, or ErrNotFound.
func (r *Repository) Resource(slug string) (Resource, error) {
	items, err := r.Resources()
	if err != nil {
		return Resource{}, err
	}
	return findBySlug(items, slug, func(rs Resource) string { return rs.Slug })
}

// ResourceSlugs returns the slug of every resource.
func (r *Repository) ResourceSlugs() ([]string, error) {
	items, err := r.Resources()
	if err != nil {
		return nil, err
	}
	return slugsOf(items, func(rs Resource) string { return rs.Slug }), nil
}

// Albums returns all albums sorted by creation date descending.
func (r *Repository) Albums() ([]Album, error) {
	items, err := r.albums.All()
	if err != nil {
		return nil, err
	}
	sortByDateDesc(items, func(a Album) (string, string) { return a.CreatedAt, a.Slug })
	return items, nil
}

// Album returns a single album by slug, or ErrNotFound.
func (r *Repository) Album(slug string) (Album, error) {
	return r.albums.Get(slug)
}

// AlbumSlugs returns the slug of every album.
func (r *Repository) AlbumSlugs() ([]string, error) {
	items, err := r.Albums()
	if err != nil {
		return nil, err
	}
	return slugsOf(items, func(a Album) string { return a.Slug }), nil
}

// AlbumStore exposes the mutation path for albums.
func (r *Repository) AlbumStore() *AlbumStore { return r.albums }

// About returns the site's about page, a single markdown document at the
// content root. ErrNotFound when the site has none or it is a draft.
func (r *Repository) About() (StaticPage, error) {
	doc, err := r.reader.ReadDoc(".", "about")
	if err != nil {
		return StaticPage{}, err
	}
	if doc.Meta.Draft {
		return StaticPage{}, ErrNotFound
	}
	return buildStaticPage(doc)
}

func findBySlug[T any](items []T, slug string, key func(T) string) (T, error) {
	for _, it := range items {
		if key(it) == slug {
			return it, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Tags returns the distinct tags across items, in first-seen order so the
// display order is stable.
func Tags[T Filterable](items []T) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		for _, t := range it.Base().Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// Years returns the distinct years across items, newest first.
func Years[T Filterable](items []T) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		y := yearOf(it.Base().Date)
		if y == "" {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// Categories returns the distinct categories across items, in first-seen
// order.
func Categories[T Filterable](items []T) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		c := it.FilterCategory()
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// loadKind serves a kind listing from cache when the directory fingerprint
// is unchanged; otherwise it re-reads, rebuilds and re-sorts. Files that
// fail kind validation are logged and skipped, in the same spirit as parse
// failures inside the reader.
func loadKind[T any](r *Repository, dir string, cache *kindCache[T], build func(RawDoc) (T, error), order func([]T)) ([]T, error) {
	fp, err := r.reader.Fingerprint(dir)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	if cache.valid && cache.fingerprint == fp {
		items := cache.items
		r.mu.RUnlock()
		return items, nil
	}
	r.mu.RUnlock()

	docs, err := r.reader.ListDocs(dir)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		if doc.Meta.Draft {
			continue
		}
		item, err := build(doc)
		if err != nil {
			r.log.Warnf("skipping: %v", err)
			continue
		}
		items = append(items, item)
	}
	if order != nil {
		order(items)
	}

	r.mu.Lock()
	cache.fingerprint = fp
	cache.items = items
	cache.valid = true
	r.mu.Unlock()
	return items, nil
}

func sortByDateDesc[T any](items []T, key func(T) (date, slug string)) {
	sort.SliceStable(items, func(i, j int) bool {
		di, si := key(items[i])
		dj, sj := key(items[j])
		if di != dj {
			return di > dj
		}
		return si < sj
	})
}

func slugsOf[T any](items []T, slug func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = slug(it)
	}
	return out
}

// ReadingTime estimates minutes to read body at WordsPerMinute, rounding up
// and never reporting less than a minute. Whitespace-separated runs count as
// one word each; every CJK rune counts as a word of its own, since much of
// the site's content is Chinese prose with no word spacing.
func ReadingTime(body string) int {
	words := countWords(body)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func countWords(s string) int {
	words := 0
	inWord := false
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
			words++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		default:
			if !inWord {
				words++
				inWord = true
			}
		}
	}
	return words
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
