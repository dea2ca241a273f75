package dto

import "time"

// ScoreResponse persisted score of one bucket
type ScoreResponse struct {
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	EnergyScore   float64   `json:"energy_score"`
	WaterScore    float64   `json:"water_score"`
	WasteScore    float64   `json:"waste_score"`
	GreeneryScore float64   `json:"greenery_score"`
	TotalScore    float64   `json:"total_score"`
	CalculatedAt  time.Time `json:"calculated_at"`
}

// DashboardResponse chart series, forecast and grade
type DashboardResponse struct {
	Labels    []string       `json:"labels"`
	Scores    []float64      `json:"scores"`
	Predicted *float64       `json:"predicted"`
	Trend     string         `json:"trend"`
	Overall   float64        `json:"overall"`
	Grade     string         `json:"grade"`
	Latest    *ScoreResponse `json:"latest"`
	Username  string         `json:"username"`
	Role      string         `json:"role"`
}
