package dto

import "time"

// MeasurementRequest create/update body. Value is a pointer so that 0 passes "required".
type MeasurementRequest struct {
	Value *float64 `json:"value" binding:"required,gte=0"`
	Month int      `json:"month" binding:"required,gte=1,lte=12"`
	Year  int      `json:"year" binding:"required,gte=1900,lte=9999"`
}

// MeasurementListQuery list filters
type MeasurementListQuery struct {
	Month int  `form:"month" binding:"omitempty,gte=1,lte=12"`
	Year  int  `form:"year" binding:"omitempty,gte=1900,lte=9999"`
	Mine  bool `form:"mine"`
	PageQuery
}

// MeasurementResponse one measurement row
type MeasurementResponse struct {
	ID        uint      `json:"id"`
	Kind      string    `json:"kind"`
	Value     float64   `json:"value"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	EnteredBy *uint     `json:"entered_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MeasurementWriteResponse result of a create/update/delete with the
// recomputed scores of every bucket the write touched
type MeasurementWriteResponse struct {
	Measurement *MeasurementResponse `json:"measurement,omitempty"`
	Scores      []ScoreResponse      `json:"scores"`
}
