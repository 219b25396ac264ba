package service

import (
	"encoding/json"
	"log"
	"os"

	"github.com/Digitaltwinshub2025/ALLEY-BLOOM/internal/web/models"
)

// ============================================================
// Alley Catalog
// ============================================================

// AlleyCatalog holds the fixed set of alleys the platform works with.
// The data file is plain JSON so the list stays editable without code
// changes; when it is missing or broken, the built-in demo alleys keep
// the app usable.
type AlleyCatalog struct {
	alleys []models.Alley
	byID   map[string]models.Alley
}

type alleyFile struct {
	Alleys []models.Alley `json:"alleys"`
}

// LoadCatalog reads the catalog from path, falling back to demo data.
func LoadCatalog(path string) *AlleyCatalog {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[CATALOG] %s not found, using demo alleys", path)
		return newCatalog(demoAlleys())
	}

	var f alleyFile
	if err := json.Unmarshal(data, &f); err != nil || len(f.Alleys) == 0 {
		log.Printf("[CATALOG] bad alley data in %s, using demo alleys", path)
		return newCatalog(demoAlleys())
	}
	return newCatalog(f.Alleys)
}

func newCatalog(alleys []models.Alley) *AlleyCatalog {
	byID := make(map[string]models.Alley, len(alleys))
	for _, a := range alleys {
		byID[a.ID] = a
	}
	return &AlleyCatalog{alleys: alleys, byID: byID}
}

// All returns every alley in catalog order.
func (c *AlleyCatalog) All() []models.Alley {
	out := make([]models.Alley, len(c.alleys))
	copy(out, c.alleys)
	return out
}

// Get returns one alley by id.
func (c *AlleyCatalog) Get(id string) (models.Alley, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// demoAlleys mirrors the three Pico-Union pilot corridors.
func demoAlleys() []models.Alley {
	return []models.Alley{
		{
			ID:          "alley-1",
			Name:        "Alley 1",
			Theme:       "Energy",
			Address:     "S Alvarado to S Lake St, Between 11th St & 12th St",
			Location:    "Pico-Union, Los Angeles",
			Coordinates: models.Coordinates{Lat: 34.0522, Lng: -118.2437},
			Dimensions:  "150ft × 12ft",
			Baseline:    models.EnvironmentalMetrics{Temperature: 95, ShadeCoverage: 5, Vegetation: 0, WaterRunoff: 100},
			Vision:      models.EnvironmentalMetrics{Temperature: 87, ShadeCoverage: 65, Vegetation: 85, WaterRunoff: 30},
			Description: "High surface temperatures, minimal shade coverage, elevated air quality index",
		},
		{
			ID:          "alley-2",
			Name:        "Alley 2",
			Theme:       "Sun",
			Address:     "S Alvarado to S Lake St, Between 12th St & 13th St",
			Location:    "Pico-Union, Los Angeles",
			Coordinates: models.Coordinates{Lat: 34.0515, Lng: -118.2437},
			Dimensions:  "140ft × 12ft",
			Baseline:    models.EnvironmentalMetrics{Temperature: 93, ShadeCoverage: 8, Vegetation: 2, WaterRunoff: 100},
			Vision:      models.EnvironmentalMetrics{Temperature: 85, ShadeCoverage: 60, Vegetation: 80, WaterRunoff: 35},
			Description: "Solar light, electricity generation, kinetic energy potential",
		},
		{
			ID:          "alley-3",
			Name:        "Alley 3",
			Theme:       "Water",
			Address:     "S Alvarado to S Lake St, Between 13th St & 14th St",
			Location:    "Pico-Union, Los Angeles",
			Coordinates: models.Coordinates{Lat: 34.0508, Lng: -118.2437},
			Dimensions:  "155ft × 12ft",
			Baseline:    models.EnvironmentalMetrics{Temperature: 94, ShadeCoverage: 3, Vegetation: 1, WaterRunoff: 95},
			Vision:      models.EnvironmentalMetrics{Temperature: 86, ShadeCoverage: 62, Vegetation: 82, WaterRunoff: 35},
			Description: "Stormwater capture, bioswales, rain garden potential",
		},
	}
}
