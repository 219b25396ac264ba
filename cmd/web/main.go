package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/common/config"
	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/common/middleware"
	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/handlers"
	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/proxy"
	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/repository"
	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
)

// ============================================================
// Alley Bloom Web Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.ScenarioDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_scenarios.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	catalog := service.LoadCatalog(filepath.Join(cfg.DataDir, "alleys.json"))
	contentStore := service.NewContentStore(cfg.ContentDir)
	scenarioSvc := service.NewScenarioService(repo, catalog)

	contentHandler := handlers.NewContentHandler(contentStore)
	scenarioHandler := handlers.NewScenarioHandler(scenarioSvc)
	alleyHandler := handlers.NewAlleyHandler(catalog)
	pageHandler := handlers.NewPageHandler(cfg.TemplatesDir)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Alley Bloom",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())
	app.Use(middleware.CacheHeaders())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api")

	api.Get("/content/:category/:file", contentHandler.Get)
	api.Post("/content/:category/:file", contentHandler.Save)
	api.Get("/content-list/:category", contentHandler.List)
	api.Get("/cost-data", contentHandler.CostData)

	api.Get("/scenarios", scenarioHandler.List)
	api.Post("/scenarios", scenarioHandler.Create)
	api.Post("/scenarios/seed", scenarioHandler.Seed)
	api.Get("/scenarios/:id", scenarioHandler.Get)
	api.Delete("/scenarios/:id", scenarioHandler.Delete)

	api.Get("/alleys", alleyHandler.List)
	api.Get("/alleys/:id", alleyHandler.Get)

	// Room snapshots live in the broadcaster; pages reach them here.
	api.Get("/rooms/:id/items", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/api/rooms/%s/items", cfg.BroadcasterURL, c.Params("id")))
	})

	// ============================================================
	// Pages & Static Assets
	// ============================================================

	app.Use("/static", static.New(cfg.StaticDir))

	for route, template := range handlers.PageRoutes {
		app.Get(route, pageHandler.Serve(template))
	}

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Alley Bloom on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Realtime channel at %s", cfg.BroadcasterURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
