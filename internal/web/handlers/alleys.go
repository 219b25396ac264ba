package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/service"
)

// ============================================================
// Alley Handlers
// ============================================================

type AlleyHandler struct {
	catalog *service.AlleyCatalog
}

func NewAlleyHandler(catalog *service.AlleyCatalog) *AlleyHandler {
	return &AlleyHandler{catalog: catalog}
}

// List возвращает каталог переулков.
func (h *AlleyHandler) List(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"alleys": h.catalog.All()})
}

// Get возвращает один переулок по id.
func (h *AlleyHandler) Get(c fiber.Ctx) error {
	alley, ok := h.catalog.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "alley not found"})
	}
	return c.JSON(alley)
}
