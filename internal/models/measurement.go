package models

import (
	"time"

	"greenscore/internal/scoring"
)

// Measurement is one raw reading. The same shape backs energy_data,
// water_data, waste_data and greenery_data; the table is chosen by
// scoring.Kind, never by the caller.
type Measurement struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Value     float64   `gorm:"not null" json:"value"`
	Month     int       `gorm:"not null" json:"month"`
	Year      int       `gorm:"not null" json:"year"`
	EnteredBy *uint     `json:"entered_by"`
	Owner     *User     `gorm:"foreignKey:EnteredBy;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// One named type per measurement table, used only for migrations so every
// table carries its own foreign key name (fk_<table>_owner).
type (
	energyData   struct{ Measurement }
	waterData    struct{ Measurement }
	wasteData    struct{ Measurement }
	greeneryData struct{ Measurement }
)

func (energyData) TableName() string   { return scoring.Energy.Table() }
func (waterData) TableName() string    { return scoring.Water.Table() }
func (wasteData) TableName() string    { return scoring.Waste.Table() }
func (greeneryData) TableName() string { return scoring.Greenery.Table() }

// measurementTables returns the migration models for every metric kind
func measurementTables() []interface{} {
	return []interface{}{&energyData{}, &waterData{}, &wasteData{}, &greeneryData{}}
}
