package service

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func newTestContentStore(t *testing.T) *ContentStore {
	t.Helper()
	s := NewContentStore(t.TempDir())
	s.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestContentWriteReadRoundTrip(t *testing.T) {
	s := newTestContentStore(t)

	doc := map[string]any{
		"title": "Design Workspace",
		"intro": "Drag murals and plants onto the canvas.",
	}
	if err := s.Write("pages", "design_workspace", doc); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := s.Read("pages", "design_workspace")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, doc)
	}
}

func TestContentWriteStampsMeta(t *testing.T) {
	s := newTestContentStore(t)

	doc := map[string]any{
		"title": "Plant Library",
		"_meta": map[string]any{"editor": "studio"},
	}
	if err := s.Write("pages", "plant_library", doc); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := s.Read("pages", "plant_library")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	meta, ok := got["_meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected _meta block, got %+v", got)
	}
	if meta["last_edited"] != "2026-08-01T12:00:00Z" {
		t.Fatalf("expected stamped edit time, got %v", meta["last_edited"])
	}
}

func TestContentReadMissingIsNotFound(t *testing.T) {
	s := newTestContentStore(t)
	if _, err := s.Read("pages", "nope"); err != ErrContentNotFound {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestContentTraversalIsRejected(t *testing.T) {
	s := newTestContentStore(t)

	// Basename sanitization keeps the write inside the category dir.
	if err := s.Write("pages", "../../escape", map[string]any{"x": 1.0}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.root, "pages", "escape.json")); err != nil {
		t.Fatalf("expected sanitized write under category dir: %v", err)
	}
	parent := filepath.Dir(s.root)
	if _, err := os.Stat(filepath.Join(parent, "escape.json")); err == nil {
		t.Fatalf("traversal escaped the content root")
	}
}

func TestContentListStripsExtension(t *testing.T) {
	s := newTestContentStore(t)
	if err := s.Write("theme", "colors", map[string]any{"highlight": "#2e7d32"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write("theme", "fonts", map[string]any{"body": "Inter"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := s.List("theme")
	want := []string{"colors", "fonts"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("list: got %v, want %v", got, want)
	}
	if got := s.List("media"); len(got) != 0 {
		t.Fatalf("expected empty list for untouched category, got %v", got)
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range ContentCategories {
		if !ValidCategory(c) {
			t.Fatalf("expected %q to be valid", c)
		}
	}
	if ValidCategory("secrets") {
		t.Fatalf("expected unknown category to be rejected")
	}
}
