package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// AnyVersion disables the optimistic version check on album mutations.
const AnyVersion = -1

// GalleryDocument is the on-disk shape of the album store: one JSON file
// holding every album. Version increments on every successful write so
// concurrent writers can detect that they lost a race instead of silently
// overwriting each other.
type GalleryDocument struct {
	Version int     `json:"version"`
	Albums  []Album `json:"albums"`
}

// AlbumStore reads and mutates the gallery JSON document. Reads are cheap
// and cached by file modification time. Mutations are serialized by a store
// mutex and follow read-modify-write with an atomic replace, which removes
// the in-process lost-update race; the version check catches everything
// else (e.g. a concurrent CLI edit).
type AlbumStore struct {
	path string
	log  *log.Logger

	mu      sync.Mutex
	cached  *GalleryDocument
	modTime time.Time
}

// NewAlbumStore creates a store over the JSON document at path. The file
// does not have to exist yet; a missing file reads as an empty gallery.
func NewAlbumStore(path string) *AlbumStore {
	return &AlbumStore{path: path, log: log.New("albums")}
}

// All returns every album in document order. A missing or unreadable
// document yields an empty slice so one corrupt file never takes down the
// whole gallery listing; the parse error is logged.
func (s *AlbumStore) All() ([]Album, error) {
	doc, err := s.read()
	if err != nil {
		s.log.Warnf("reading %s: %v", s.path, err)
		return nil, nil
	}
	return append([]Album(nil), doc.Albums...), nil
}

// Get returns the album with the given slug, or ErrNotFound.
func (s *AlbumStore) Get(slug string) (Album, error) {
	doc, err := s.read()
	if err != nil {
		return Album{}, err
	}
	for _, a := range doc.Albums {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Album{}, ErrNotFound
}

// Version returns the document's current version counter.
func (s *AlbumStore) Version() (int, error) {
	doc, err := s.read()
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

// Create adds a new album. CreatedAt defaults to today, ID to the slug, and
// the image list starts empty. Returns ErrExists when the slug is taken.
func (s *AlbumStore) Create(a Album) error {
	if err := validateAlbum(a); err != nil {
		return fmt.Errorf("create album: %w", err)
	}
	return s.mutate(AnyVersion, func(doc *GalleryDocument) error {
		for _, existing := range doc.Albums {
			if existing.Slug == a.Slug {
				return ErrExists
			}
		}
		if a.ID == "" {
			a.ID = a.Slug
		}
		if a.CreatedAt == "" {
			a.CreatedAt = time.Now().Format(dateLayout)
		}
		if a.Images == nil {
			a.Images = []GalleryImage{}
		}
		a.ImageCount = len(a.Images)
		doc.Albums = append(doc.Albums, a)
		return nil
	})
}

// Update replaces the stored album with the same slug.
func (s *AlbumStore) Update(a Album, expect int) error {
	if err := validateAlbum(a); err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	return s.mutate(expect, func(doc *GalleryDocument) error {
		for i := range doc.Albums {
			if doc.Albums[i].Slug == a.Slug {
				a.ImageCount = len(a.Images)
				doc.Albums[i] = a
				return nil
			}
		}
		return ErrNotFound
	})
}

// Delete removes the album with the given slug.
func (s *AlbumStore) Delete(slug string, expect int) error {
	return s.mutate(expect, func(doc *GalleryDocument) error {
		for i := range doc.Albums {
			if doc.Albums[i].Slug == slug {
				doc.Albums = append(doc.Albums[:i], doc.Albums[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddImage appends img to the album's image sequence and returns the stored
// image. A missing ID is assigned a fresh uuid; a missing CreatedAt defaults
// to today. ImageCount is recomputed, never trusted.
func (s *AlbumStore) AddImage(slug string, img GalleryImage, expect int) (GalleryImage, error) {
	if err := validateImage(img); err != nil {
		return GalleryImage{}, fmt.Errorf("add image: %w", err)
	}
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	if img.CreatedAt == "" {
		img.CreatedAt = time.Now().Format(dateLayout)
	}
	err := s.mutate(expect, func(doc *GalleryDocument) error {
		for i := range doc.Albums {
			if doc.Albums[i].Slug != slug {
				continue
			}
			for _, existing := range doc.Albums[i].Images {
				if existing.ID == img.ID {
					return fmt.Errorf("add image: id %s: %w", img.ID, ErrExists)
				}
			}
			doc.Albums[i].Images = append(doc.Albums[i].Images, img)
			doc.Albums[i].ImageCount = len(doc.Albums[i].Images)
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return GalleryImage{}, err
	}
	return img, nil
}

// RemoveImage deletes the image with the given id from the album.
func (s *AlbumStore) RemoveImage(slug, id string, expect int) error {
	return s.mutate(expect, func(doc *GalleryDocument) error {
		for i := range doc.Albums {
			if doc.Albums[i].Slug != slug {
				continue
			}
			for j := range doc.Albums[i].Images {
				if doc.Albums[i].Images[j].ID == id {
					doc.Albums[i].Images = append(doc.Albums[i].Images[:j], doc.Albums[i].Images[j+1:]...)
					doc.Albums[i].ImageCount = len(doc.Albums[i].Images)
					return nil
				}
			}
			return ErrNotFound
		}
		return ErrNotFound
	})
}

// mutate runs fn against the current document under the store lock, then
// bumps the version and atomically replaces the file. If expect is not
// AnyVersion and does not match the document read inside the lock, the
// mutation fails with ErrConflict and nothing is written.
func (s *AlbumStore) mutate(expect int, fn func(*GalleryDocument) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		// Refuse to clobber a document we cannot parse.
		return fmt.Errorf("album store: %w", err)
	}
	if expect != AnyVersion && doc.Version != expect {
		return fmt.Errorf("album store: expected version %d, have %d: %w", expect, doc.Version, ErrConflict)
	}
	if err := fn(doc); err != nil {
		return err
	}
	doc.Version++
	if err := s.write(doc); err != nil {
		return err
	}
	s.cached = doc
	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
	}
	return nil
}

// read returns the current document, re-parsing only when the file changed
// on disk since the last read.
func (s *AlbumStore) read() (*GalleryDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &GalleryDocument{Albums: []Album{}}, nil
		}
		return nil, err
	}
	if s.cached != nil && info.ModTime().Equal(s.modTime) {
		return s.cached, nil
	}
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	s.cached = doc
	s.modTime = info.ModTime()
	return doc, nil
}

func (s *AlbumStore) load() (*GalleryDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &GalleryDocument{Albums: []Album{}}, nil
		}
		return nil, err
	}
	var doc GalleryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if doc.Albums == nil {
		doc.Albums = []Album{}
	}
	return &doc, nil
}

// write marshals doc and replaces the file atomically so a crashed writer
// can never leave a half-written document behind.
func (s *AlbumStore) write(doc *GalleryDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".albums-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
