package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/service"
)

func newContentApp(t *testing.T, editAllowed bool) (*fiber.App, *service.ContentStore) {
	t.Helper()
	store := service.NewContentStore(t.TempDir())
	h := NewContentHandler(store)
	h.editAllowed = func(fiber.Ctx) bool { return editAllowed }

	app := fiber.New()
	app.Get("/api/content/:category/:file", h.Get)
	app.Post("/api/content/:category/:file", h.Save)
	app.Get("/api/content-list/:category", h.List)
	app.Get("/api/cost-data", h.CostData)
	return app, store
}

func TestSaveRejectedOutsideLoopback(t *testing.T) {
	app, store := newContentApp(t, false)

	body := []byte(`{"title":"Edited Title"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/content/pages/home", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-loopback save, got %d", resp.StatusCode)
	}
	if _, err := store.Read("pages", "home"); err != service.ErrContentNotFound {
		t.Fatalf("rejected save must not persist anything, read err = %v", err)
	}
}

func TestSaveAllowedFromLoopback(t *testing.T) {
	app, store := newContentApp(t, true)

	body := []byte(`{"title":"Edited Title"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/content/pages/home", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for a loopback save, got %d", resp.StatusCode)
	}

	doc, err := store.Read("pages", "home")
	if err != nil {
		t.Fatalf("read saved doc: %v", err)
	}
	if doc["title"] != "Edited Title" {
		t.Fatalf("unexpected saved doc: %+v", doc)
	}
}

func TestSaveRejectsUnknownCategory(t *testing.T) {
	app, _ := newContentApp(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/content/secrets/home", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", resp.StatusCode)
	}
}

func TestGetMissingContentIs404(t *testing.T) {
	app, _ := newContentApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/content/pages/missing", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCostDataServedFromContentRoot(t *testing.T) {
	root := t.TempDir()
	h := NewContentHandler(service.NewContentStore(root))
	app := fiber.New()
	app.Get("/api/cost-data", h.CostData)

	missing, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cost-data", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if missing.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 when cost data is absent, got %d", missing.StatusCode)
	}

	fixture := []byte(`{"fences":[{"type":"cedar","costPerFt":45}]}`)
	if err := os.WriteFile(filepath.Join(root, "cost_data.json"), fixture, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cost-data", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := doc["fences"]; !ok {
		t.Fatalf("expected fences block, got %+v", doc)
	}
}

func TestIsLoopback(t *testing.T) {
	for _, ip := range []string{"127.0.0.1", "::1"} {
		if !isLoopback(ip) {
			t.Fatalf("expected %q to pass the edit gate", ip)
		}
	}
	for _, ip := range []string{"10.0.0.7", "0.0.0.0", "192.168.1.20", ""} {
		if isLoopback(ip) {
			t.Fatalf("expected %q to be rejected by the edit gate", ip)
		}
	}
}
