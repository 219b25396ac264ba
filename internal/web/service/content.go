package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ============================================================
// Content Store
// ============================================================

// ContentCategories are the only categories the edit workflow may touch.
var ContentCategories = []string{"pages", "areas", "media", "theme"}

var (
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidPath     = errors.New("invalid content path")
)

// ContentStore reads and writes the flat JSON documents that hold
// editable page copy. Every save is atomic: the document lands in a temp
// file first and is renamed into place, so readers never see a partial
// write.
type ContentStore struct {
	root string
	now  func() time.Time
}

func NewContentStore(root string) *ContentStore {
	return &ContentStore{root: root, now: time.Now}
}

// ValidCategory reports whether the category is editable at all.
func ValidCategory(category string) bool {
	for _, c := range ContentCategories {
		if c == category {
			return true
		}
	}
	return false
}

// resolvePath maps category/filename to a path under the content root.
// Basenames only; anything escaping the root is rejected.
func (s *ContentStore) resolvePath(category, filename string) (string, error) {
	safeCategory := filepath.Base(category)
	safeFilename := filepath.Base(filename)
	if !strings.HasSuffix(safeFilename, ".json") {
		safeFilename += ".json"
	}

	path := filepath.Join(s.root, safeCategory, safeFilename)
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(pathAbs, rootAbs+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return path, nil
}

// Read returns one content document, or ErrContentNotFound when it is
// missing or not valid JSON.
func (s *ContentStore) Read(category, filename string) (map[string]any, error) {
	path, err := s.resolvePath(category, filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrContentNotFound
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrContentNotFound
	}
	return doc, nil
}

// Write atomically persists the full document, stamping the edit time
// into _meta when the document carries one.
func (s *ContentStore) Write(category, filename string, doc map[string]any) error {
	path, err := s.resolvePath(category, filename)
	if err != nil {
		return err
	}

	if meta, ok := doc["_meta"].(map[string]any); ok {
		meta["last_edited"] = s.now().UTC().Format(time.RFC3339)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir content dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// CostData returns the structured cost dataset consumed by the fence
// map and other dynamic pages. It lives at the content root, outside
// the editable categories.
func (s *ContentStore) CostData() (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(s.root, "cost_data.json"))
	if err != nil {
		return nil, ErrContentNotFound
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrContentNotFound
	}
	return doc, nil
}

// List returns the document names (without extension) in a category.
// A missing category directory is just an empty list.
func (s *ContentStore) List(category string) []string {
	dir := filepath.Join(s.root, filepath.Base(category))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, strings.TrimSuffix(e.Name(), ".json"))
	}
	return files
}
