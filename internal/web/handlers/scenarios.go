package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/repository"
	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/service"
)

// ============================================================
// Scenario Handlers
// ============================================================

type ScenarioHandler struct {
	svc *service.ScenarioService
}

func NewScenarioHandler(svc *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{svc: svc}
}

type createScenarioRequest struct {
	Name        string `json:"name"`
	AlleyID     string `json:"alleyId"`
	DesignType  string `json:"designType"`
	Description string `json:"description"`
}

// List возвращает все сценарии.
func (h *ScenarioHandler) List(c fiber.Ctx) error {
	scenarios, err := h.svc.List(c.Context())
	if err != nil {
		log.Printf("[SCENARIO] list: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load scenarios"})
	}
	return c.JSON(fiber.Map{"scenarios": scenarios})
}

// Get возвращает один сценарий по id.
func (h *ScenarioHandler) Get(c fiber.Ctx) error {
	scenario, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scenario not found"})
		}
		log.Printf("[SCENARIO] get: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load scenario"})
	}
	return c.JSON(scenario)
}

// Create создаёт сценарий из формы name/alleyId/designType/description.
func (h *ScenarioHandler) Create(c fiber.Ctx) error {
	var req createScenarioRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}

	scenario, err := h.svc.Create(c.Context(), req.Name, req.AlleyID, req.DesignType, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("[SCENARIO] create: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to save scenario"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Scenario saved",
		"scenario": scenario,
	})
}

// Delete удаляет сценарий; отсутствующий id — не ошибка.
func (h *ScenarioHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		log.Printf("[SCENARIO] delete: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to delete scenario"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Scenario deleted"})
}

// Seed наполняет пустую инсталляцию демо-сценариями.
func (h *ScenarioHandler) Seed(c fiber.Ctx) error {
	created, err := h.svc.Seed(c.Context())
	if err != nil {
		log.Printf("[SCENARIO] seed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to seed scenarios"})
	}

	ids := make([]string, len(created))
	for i, s := range created {
		ids[i] = s.ID
	}
	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Demo scenarios seeded",
		"scenarios_created": len(created),
		"scenarios":         ids,
	})
}
