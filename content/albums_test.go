package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupAlbumStore(t *testing.T) *AlbumStore {
	t.Helper()
	s := NewAlbumStore(filepath.Join(t.TempDir(), "albums.json"))
	err := s.Create(Album{
		Slug:      "travel",
		Name:      "旅行",
		Category:  "生活",
		CreatedAt: "2024-05-01",
	})
	if err != nil {
		t.Fatalf("seed album failed: %v", err)
	}
	return s
}

func TestAlbumStoreMissingFile(t *testing.T) {
	s := NewAlbumStore(filepath.Join(t.TempDir(), "albums.json"))

	albums, err := s.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(albums) != 0 {
		t.Errorf("missing file should read as empty gallery, got %d albums", len(albums))
	}
}

func TestCreateAndGet(t *testing.T) {
	s := setupAlbumStore(t)

	got, err := s.Get("travel")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "旅行" || got.ID != "travel" {
		t.Errorf("album = %+v", got)
	}
	if got.Images == nil || got.ImageCount != 0 {
		t.Errorf("new album should start with an empty image list, got %+v", got)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	s := setupAlbumStore(t)

	err := s.Create(Album{Slug: "travel", Name: "duplicate"})
	if !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
}

func TestCreateRequiresSlugAndName(t *testing.T) {
	s := setupAlbumStore(t)

	if err := s.Create(Album{Name: "no slug"}); err == nil {
		t.Error("album without slug should fail validation")
	}
	if err := s.Create(Album{Slug: "no-name"}); err == nil {
		t.Error("album without name should fail validation")
	}
}

func TestAddImage(t *testing.T) {
	s := setupAlbumStore(t)

	stored, err := s.AddImage("travel", GalleryImage{
		ID:  "img-1",
		Src: "/public/images/travel/sea.jpg",
		Alt: "sea",
	}, AnyVersion)
	if err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	if stored.ID != "img-1" {
		t.Errorf("a provided image ID must be kept, got %q", stored.ID)
	}

	album, err := s.Get("travel")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(album.Images) != 1 || album.ImageCount != 1 {
		t.Errorf("imageCount must track the image list: %+v", album)
	}
	if album.Images[0].CreatedAt == "" {
		t.Error("AddImage should default CreatedAt")
	}
}

func TestAddImageGeneratesID(t *testing.T) {
	s := setupAlbumStore(t)

	stored, err := s.AddImage("travel", GalleryImage{Src: "/public/images/travel/a.jpg"}, AnyVersion)
	if err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	if stored.ID == "" {
		t.Error("AddImage should assign an ID when none is given")
	}
}

func TestAddImageDuplicateID(t *testing.T) {
	s := setupAlbumStore(t)

	img := GalleryImage{ID: "dup", Src: "/public/images/travel/a.jpg"}
	if _, err := s.AddImage("travel", img, AnyVersion); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	if _, err := s.AddImage("travel", img, AnyVersion); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists for duplicate image ID, got %v", err)
	}
}

func TestAddImageRequiresSrc(t *testing.T) {
	s := setupAlbumStore(t)

	if _, err := s.AddImage("travel", GalleryImage{Alt: "no src"}, AnyVersion); err == nil {
		t.Error("image without src should fail validation")
	}
}

func TestAddImageAlbumNotFound(t *testing.T) {
	s := setupAlbumStore(t)

	_, err := s.AddImage("nope", GalleryImage{Src: "/x.jpg"}, AnyVersion)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveImage(t *testing.T) {
	s := setupAlbumStore(t)

	if _, err := s.AddImage("travel", GalleryImage{ID: "keep", Src: "/a.jpg"}, AnyVersion); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	if _, err := s.AddImage("travel", GalleryImage{ID: "drop", Src: "/b.jpg"}, AnyVersion); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}

	if err := s.RemoveImage("travel", "drop", AnyVersion); err != nil {
		t.Fatalf("RemoveImage failed: %v", err)
	}

	album, err := s.Get("travel")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(album.Images) != 1 || album.Images[0].ID != "keep" || album.ImageCount != 1 {
		t.Errorf("album after remove = %+v", album)
	}

	if err := s.RemoveImage("travel", "drop", AnyVersion); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing a missing image should return ErrNotFound, got %v", err)
	}
}

func TestVersionBumpsOnMutation(t *testing.T) {
	s := setupAlbumStore(t)

	before, err := s.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if _, err := s.AddImage("travel", GalleryImage{Src: "/a.jpg"}, AnyVersion); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	after, err := s.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if after != before+1 {
		t.Errorf("version = %d, want %d", after, before+1)
	}
}

func TestStaleVersionConflicts(t *testing.T) {
	s := setupAlbumStore(t)

	v, err := s.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}

	if _, err := s.AddImage("travel", GalleryImage{Src: "/a.jpg"}, v); err != nil {
		t.Fatalf("AddImage with current version failed: %v", err)
	}

	// Same version again is now stale.
	if _, err := s.AddImage("travel", GalleryImage{Src: "/b.jpg"}, v); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on stale version, got %v", err)
	}

	album, err := s.Get("travel")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(album.Images) != 1 {
		t.Errorf("conflicting write must not be applied, got %d images", len(album.Images))
	}
}

func TestDeleteAlbum(t *testing.T) {
	s := setupAlbumStore(t)

	if err := s.Delete("travel", AnyVersion); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("travel"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted album should be gone, got %v", err)
	}
	if err := s.Delete("travel", AnyVersion); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting twice should return ErrNotFound, got %v", err)
	}
}

func TestAlbumsPersistAcrossStores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "albums.json")

	s := NewAlbumStore(path)
	if err := s.Create(Album{Slug: "one", Name: "One"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.AddImage("one", GalleryImage{Src: "/a.jpg"}, AnyVersion); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}

	reopened := NewAlbumStore(path)
	album, err := reopened.Get("one")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if album.ImageCount != 1 {
		t.Errorf("reopened store should see persisted state: %+v", album)
	}
}

func TestMutateRefusesCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "albums.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt doc: %v", err)
	}

	s := NewAlbumStore(path)
	if err := s.Create(Album{Slug: "x", Name: "X"}); err == nil {
		t.Fatal("mutating a corrupt document should fail, not overwrite it")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "{not json" {
		t.Errorf("corrupt document was clobbered: %q", string(data))
	}

	// Reads degrade to an empty gallery instead of failing the page.
	albums, err := s.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(albums) != 0 {
		t.Errorf("corrupt doc should list as empty, got %d", len(albums))
	}
}
