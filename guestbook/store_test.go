package guestbook

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "guestbook.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := setupTestStore(t)

	added, err := s.Add("小明", "很喜欢这个网站！")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID == 0 {
		t.Error("Add should assign an ID")
	}
	if added.CreatedAt == "" {
		t.Error("Add should set CreatedAt")
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List count = %d, want 1", len(entries))
	}
	if entries[0].Name != "小明" || entries[0].Message != "很喜欢这个网站！" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestAddTrimsWhitespace(t *testing.T) {
	s := setupTestStore(t)

	added, err := s.Add("  visitor  ", "  hello  ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.Name != "visitor" || added.Message != "hello" {
		t.Errorf("fields should be trimmed: %+v", added)
	}
}

func TestAddValidation(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		name    string
		message string
	}{
		{"", "message"},
		{"   ", "message"},
		{"name", ""},
		{"name", "   "},
		{strings.Repeat("n", 51), "message"},
		{"name", strings.Repeat("m", 2001)},
	}
	for _, tt := range tests {
		if _, err := s.Add(tt.name, tt.message); err == nil {
			t.Errorf("Add(%q, %d-char message) should fail validation", tt.name, len(tt.message))
		}
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("invalid entries must not be stored, got %d", len(entries))
	}
}

func TestListNewestFirst(t *testing.T) {
	s := setupTestStore(t)

	for _, msg := range []string{"first", "second", "third"} {
		if _, err := s.Add("visitor", msg); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if entries[i].Message != w {
			t.Errorf("entries[%d].Message = %q, want %q", i, entries[i].Message, w)
		}
	}
}

func TestListLimit(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.Add("visitor", "message"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	entries, err := s.List(3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("List(3) count = %d, want 3", len(entries))
	}
}

func TestDelete(t *testing.T) {
	s := setupTestStore(t)

	added, err := s.Add("visitor", "to be removed")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.Delete(added.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entry should be gone, got %d", len(entries))
	}

	if err := s.Delete(added.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting a missing entry should return ErrNotFound, got %v", err)
	}
}
