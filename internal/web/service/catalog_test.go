package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalogFallsBackToDemoData(t *testing.T) {
	c := LoadCatalog(filepath.Join(t.TempDir(), "alleys.json"))
	if len(c.All()) != 3 {
		t.Fatalf("expected 3 demo alleys, got %d", len(c.All()))
	}
	if _, ok := c.Get("alley-1"); !ok {
		t.Fatalf("expected demo alley-1 to resolve")
	}
}

func TestLoadCatalogReadsDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alleys.json")
	data := `{"alleys":[{"id":"alley-x","name":"Alley X","baseline":{"temperature":90},"vision":{"temperature":84}}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c := LoadCatalog(path)
	alley, ok := c.Get("alley-x")
	if !ok {
		t.Fatalf("expected alley-x from data file")
	}
	if alley.Baseline.Temperature != 90 || alley.Vision.Temperature != 84 {
		t.Fatalf("unexpected metrics: %+v", alley)
	}
	if _, ok := c.Get("alley-1"); ok {
		t.Fatalf("demo data must not leak when the file loads")
	}
}

func TestLoadCatalogRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alleys.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if c := LoadCatalog(path); len(c.All()) != 3 {
		t.Fatalf("expected demo fallback on malformed file")
	}
}
