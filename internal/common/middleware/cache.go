package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Cache Headers Middleware
// ============================================================

// CacheHeaders keeps HTML and API responses out of browser caches so
// content edits show up immediately, while static assets get a long
// max-age. Versioned asset URLs handle their own busting.
func CacheHeaders() fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		path := c.Path()
		switch {
		case strings.HasPrefix(path, "/static/"):
			c.Set("Cache-Control", "public, max-age=86400")
		default:
			c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
			c.Set("Pragma", "no-cache")
		}
		return nil
	}
}
