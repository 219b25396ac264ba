package models

// ============================================================
// Scenario Model
// ============================================================

// EnvironmentalMetrics describes one measured or projected state of an
// alley. Temperature is °F; the rest are percentages.
type EnvironmentalMetrics struct {
	Temperature   float64 `json:"temperature"`
	ShadeCoverage float64 `json:"shadeCoverage"`
	Vegetation    float64 `json:"vegetation"`
	WaterRunoff   float64 `json:"waterRunoff"`
}

// Improvements are the baseline/vision deltas, computed once when the
// scenario is created and never recomputed. Later edits to alley data do
// not retroactively change a stored scenario.
type Improvements struct {
	Temperature     float64 `json:"temperature"`
	Shade           float64 `json:"shade"`
	Vegetation      float64 `json:"vegetation"`
	RunoffReduction float64 `json:"runoffReduction"`
}

// Scenario is a named before/after design snapshot for one alley.
type Scenario struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	AlleyID      string               `json:"alleyId"`
	AlleyName    string               `json:"alleyName"`
	AlleyAddress string               `json:"alleyAddress"`
	DesignType   string               `json:"designType"`
	Description  string               `json:"description"`
	CreatedAt    string               `json:"createdAt"`
	Baseline     EnvironmentalMetrics `json:"baseline"`
	Vision       EnvironmentalMetrics `json:"vision"`
	Improvements Improvements         `json:"improvements"`
}
