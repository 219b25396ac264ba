package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/service"
)

// ============================================================
// Content Handlers
// ============================================================

// ContentHandler exposes the edit-mode content workflow: read a JSON
// content document, save a full replacement, list a category.
type ContentHandler struct {
	store *service.ContentStore
	// editAllowed gates saves; the default only admits loopback clients.
	editAllowed func(c fiber.Ctx) bool
}

func NewContentHandler(store *service.ContentStore) *ContentHandler {
	return &ContentHandler{
		store:       store,
		editAllowed: func(c fiber.Ctx) bool { return isLoopback(c.IP()) },
	}
}

// Get отдаёт JSON-документ контента.
func (h *ContentHandler) Get(c fiber.Ctx) error {
	category := c.Params("category")
	if !service.ValidCategory(category) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
	}

	doc, err := h.store.Read(category, c.Params("file"))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "content not found"})
		}
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid content path"})
	}
	return c.JSON(doc)
}

// Save сохраняет документ целиком. Только с localhost.
func (h *ContentHandler) Save(c fiber.Ctx) error {
	if !h.editAllowed(c) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "edit mode is only available on localhost"})
	}

	category := c.Params("category")
	if !service.ValidCategory(category) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
	}

	var doc map[string]any
	if err := json.Unmarshal(c.Body(), &doc); err != nil || doc == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}

	file := c.Params("file")
	if err := h.store.Write(category, file, doc); err != nil {
		log.Printf("[CONTENT] save %s/%s: %v", category, file, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save content"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": category + "/" + file + " saved",
	})
}

// CostData отдаёт структурированные данные о стоимости для fence map.
func (h *ContentHandler) CostData(c fiber.Ctx) error {
	doc, err := h.store.CostData()
	if err != nil {
		log.Printf("[CONTENT] cost data: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load cost data"})
	}
	return c.JSON(doc)
}

// List перечисляет документы категории.
func (h *ContentHandler) List(c fiber.Ctx) error {
	category := c.Params("category")
	if !service.ValidCategory(category) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
	}
	return c.JSON(fiber.Map{"files": h.store.List(category)})
}

func isLoopback(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1" || ip == "localhost"
}
