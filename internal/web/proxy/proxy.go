package proxy

import (
	"io"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Broadcaster Proxy
// ============================================================

// Forward relays a GET to the broadcaster and copies the response back,
// used for room snapshots so pages only ever talk to this service.
func Forward(c fiber.Ctx, targetURL string) error {
	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, targetURL, nil)
	if err != nil {
		log.Printf("[PROXY] build request: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[PROXY] %s: %v", targetURL, err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach broadcaster"})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] read response: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid broadcaster response"})
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Set("Content-Type", ct)
	}
	c.Status(resp.StatusCode)
	return c.Send(data)
}
