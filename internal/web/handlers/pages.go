package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Page Handlers
// ============================================================

// PageRoutes maps clean paths to template files, the same table the
// platform has always shipped. Several paths alias the same template.
var PageRoutes = map[string]string{
	"/":                      "index_unified.html",
	"/index":                 "index_unified.html",
	"/visualization-studio":  "visualization_studio.html",
	"/street-view-designer":  "visualization_studio.html",
	"/before-after":          "before_after.html",
	"/design-workspace":      "design_workspace.html",
	"/design-brief":          "design_brief.html",
	"/scenarios":             "scenarios.html",
	"/live-dashboard":        "live_dashboard.html",
	"/plant-library":         "plant_library.html",
	"/innovation-alleys-map": "innovation_alleys_map.html",
	"/digital-twin":          "unreal_viewer.html",
	"/unreal-viewer":         "unreal_viewer.html",
}

// PageHandler serves the HTML templates behind the clean routes.
type PageHandler struct {
	templatesDir string
}

func NewPageHandler(templatesDir string) *PageHandler {
	return &PageHandler{templatesDir: templatesDir}
}

// Serve returns a handler rendering one named template.
func (h *PageHandler) Serve(template string) fiber.Handler {
	path := filepath.Join(h.templatesDir, template)
	return func(c fiber.Ctx) error {
		if _, err := os.Stat(path); err != nil {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "page not found"})
		}
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendFile(path)
	}
}
