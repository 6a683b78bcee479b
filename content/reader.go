package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/labstack/gommon/log"
)

// FrontMeta is the metadata block at the top of a content file. Fields not
// present in a given kind simply stay zero; the per-kind builders decide
// which ones are required.
type FrontMeta struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"` // optional override of the filename-derived slug
	Date        string   `yaml:"date"`
	Updated     string   `yaml:"updated"`
	Summary     string   `yaml:"summary"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Cover       string   `yaml:"cover"`
	Series      string   `yaml:"series"`
	URL         string   `yaml:"url"`
	Category    string   `yaml:"category"`
	Draft       bool     `yaml:"draft"`
}

// RawDoc is one parsed content file before kind-specific construction.
type RawDoc struct {
	Slug string
	Meta FrontMeta
	Body []byte
}

// Reader enumerates and parses front-matter markdown documents from a
// filesystem. It is read-only and tolerates individual malformed files:
// a file that fails to parse is logged and skipped, the rest of the listing
// still succeeds.
type Reader struct {
	fsys fs.FS
	log  *log.Logger
}

// NewReader creates a Reader over fsys, typically os.DirFS(contentDir).
func NewReader(fsys fs.FS) *Reader {
	return &Reader{fsys: fsys, log: log.New("content")}
}

// ListDocs parses every *.md file directly under dir, ordered by filename so
// the result is deterministic regardless of filesystem enumeration order.
// A missing directory yields an empty slice, not an error.
func (r *Reader) ListDocs(dir string) ([]RawDoc, error) {
	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]RawDoc, 0, len(names))
	for _, name := range names {
		doc, err := r.parseFile(path.Join(dir, name))
		if err != nil {
			r.log.Warnf("skipping %s: %v", path.Join(dir, name), err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ReadDoc reads a single document by slug. Returns ErrNotFound when no file
// with that slug exists. A slug containing a path separator is rejected
// outright so lookups can never escape the kind directory.
func (r *Reader) ReadDoc(dir, slug string) (RawDoc, error) {
	if slug == "" || strings.ContainsAny(slug, "/\\") || slug == "." || slug == ".." {
		return RawDoc{}, ErrNotFound
	}
	doc, err := r.parseFile(path.Join(dir, slug+".md"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RawDoc{}, ErrNotFound
		}
		return RawDoc{}, err
	}
	return doc, nil
}

// Fingerprint summarizes the current state of dir (file names, sizes and
// modification times). The repository compares fingerprints to decide when
// its in-memory view is stale, so file edits become visible without a
// restart.
func (r *Reader) Fingerprint(dir string) (string, error) {
	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var b strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s:%d:%d;", e.Name(), info.Size(), info.ModTime().UnixNano())
	}
	return b.String(), nil
}

func (r *Reader) parseFile(p string) (RawDoc, error) {
	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		return RawDoc{}, err
	}

	var meta FrontMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return RawDoc{}, fmt.Errorf("parse front matter: %w", err)
	}

	name := path.Base(p)
	slug := strings.TrimSuffix(name, ".md")
	if meta.Slug != "" {
		slug = meta.Slug
	}

	return RawDoc{Slug: slug, Meta: meta, Body: body}, nil
}
