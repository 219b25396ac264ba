package models

// ============================================================
// Alley Model
// ============================================================

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Alley is one collaborative workspace: a physical alley corridor with
// its current (baseline) and projected (vision) environmental state.
// Its id doubles as the room key on the realtime channel.
type Alley struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Theme       string               `json:"theme"`
	Address     string               `json:"address"`
	Location    string               `json:"location"`
	Coordinates Coordinates          `json:"coordinates"`
	Dimensions  string               `json:"dimensions"`
	Baseline    EnvironmentalMetrics `json:"baseline"`
	Vision      EnvironmentalMetrics `json:"vision"`
	Description string               `json:"description"`
}
