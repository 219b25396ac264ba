package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/models"
)

// ============================================================
// Scenario Service
// ============================================================

// ErrValidation marks user input rejected before any persistence call.
var ErrValidation = errors.New("validation failed")

// ScenarioStore is the persistence surface the service needs. The sqlite
// repository satisfies it; tests use an in-memory fake.
type ScenarioStore interface {
	Insert(ctx context.Context, s *models.Scenario) error
	List(ctx context.Context) ([]models.Scenario, error)
	GetByID(ctx context.Context, id string) (*models.Scenario, error)
	Delete(ctx context.Context, id string) error
}

// ScenarioService создаёт, перечисляет и удаляет сценарии.
type ScenarioService struct {
	store   ScenarioStore
	catalog *AlleyCatalog
	now     func() time.Time
}

func NewScenarioService(store ScenarioStore, catalog *AlleyCatalog) *ScenarioService {
	return &ScenarioService{store: store, catalog: catalog, now: time.Now}
}

// Create builds a scenario snapshot for the alley and persists it. The
// improvement deltas are computed here, once; they are a historical
// snapshot and are never recomputed when alley data changes later.
func (s *ScenarioService) Create(ctx context.Context, name, alleyID, designType, description string) (*models.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: scenario name required", ErrValidation)
	}
	alley, ok := s.catalog.Get(alleyID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown alley %q", ErrValidation, alleyID)
	}

	scenario := &models.Scenario{
		ID:           "scenario-" + uuid.NewString(),
		Name:         name,
		AlleyID:      alley.ID,
		AlleyName:    alley.Name,
		AlleyAddress: alley.Address,
		DesignType:   designType,
		Description:  description,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
		Baseline:     alley.Baseline,
		Vision:       alley.Vision,
		Improvements: computeImprovements(alley.Baseline, alley.Vision),
	}

	if err := s.store.Insert(ctx, scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

// computeImprovements derives the before/after deltas. Temperature and
// runoff improve by going down, shade and vegetation by going up.
func computeImprovements(baseline, vision models.EnvironmentalMetrics) models.Improvements {
	return models.Improvements{
		Temperature:     baseline.Temperature - vision.Temperature,
		Shade:           vision.ShadeCoverage - baseline.ShadeCoverage,
		Vegetation:      vision.Vegetation - baseline.Vegetation,
		RunoffReduction: baseline.WaterRunoff - vision.WaterRunoff,
	}
}

// List returns scenarios in the store's natural (insertion) order.
func (s *ScenarioService) List(ctx context.Context) ([]models.Scenario, error) {
	return s.store.List(ctx)
}

// Get returns one scenario or the store's not-found error.
func (s *ScenarioService) Get(ctx context.Context, id string) (*models.Scenario, error) {
	return s.store.GetByID(ctx, id)
}

// Delete removes one scenario. An absent id is a no-op, not an error.
// Nothing cascades into room state.
func (s *ScenarioService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Seed creates one demo scenario per catalog alley with a rotating
// design type, for empty installs and demos.
func (s *ScenarioService) Seed(ctx context.Context) ([]models.Scenario, error) {
	designTypes := []string{"Rain Gardens", "Tree Canopy", "Permeable Paving", "Green Wall", "Solar Shade"}

	created := []models.Scenario{}
	for i, alley := range s.catalog.All() {
		designType := designTypes[i%len(designTypes)]
		scenario, err := s.Create(ctx,
			fmt.Sprintf("%s - %s", alley.Name, designType),
			alley.ID,
			designType,
			fmt.Sprintf("Design concept focusing on %s for %s", strings.ToLower(designType), alley.Name),
		)
		if err != nil {
			return created, err
		}
		created = append(created, *scenario)
	}
	return created, nil
}
