package models

import (
	"time"
)

// Score is the derived score of one (month, year) bucket. Uniqueness per
// bucket is kept by ScoreRepository.Replace, there is no unique index.
type Score struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Month         int       `gorm:"not null;index:idx_score_bucket,priority:2" json:"month"`
	Year          int       `gorm:"not null;index:idx_score_bucket,priority:1" json:"year"`
	EnergyScore   float64   `json:"energy_score"`
	WaterScore    float64   `json:"water_score"`
	WasteScore    float64   `json:"waste_score"`
	GreeneryScore float64   `json:"greenery_score"`
	TotalScore    float64   `json:"total_score"`
	CalculatedAt  time.Time `gorm:"autoCreateTime" json:"calculated_at"`
}

// TableName table name
func (Score) TableName() string {
	return "sustainability_scores"
}
