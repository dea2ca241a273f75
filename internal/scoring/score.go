// Package scoring holds the sustainability score arithmetic: sub-scores for a
// bucket, the one-step linear forecast and the letter grade. Nothing here
// touches storage.
package scoring

import "math"

// Averages are the per-kind measurement averages of one (month, year) bucket.
// A kind with no measurements averages to zero.
type Averages struct {
	Energy   float64
	Water    float64
	Waste    float64
	Greenery float64
}

// Result holds the sub-scores and total of one bucket.
type Result struct {
	EnergyScore   float64 `json:"energy_score"`
	WaterScore    float64 `json:"water_score"`
	WasteScore    float64 `json:"waste_score"`
	GreeneryScore float64 `json:"greenery_score"`
	TotalScore    float64 `json:"total_score"`
}

// Compute derives the four sub-scores and the total from bucket averages.
// Energy and water lose one point per 10 units, waste one point per 5 units,
// all floored at zero. Greenery earns one point per 2 units, capped at 100.
func Compute(avg Averages) Result {
	r := Result{
		EnergyScore:   math.Max(0, 100-avg.Energy/10),
		WaterScore:    math.Max(0, 100-avg.Water/10),
		WasteScore:    math.Max(0, 100-avg.Waste/5),
		GreeneryScore: math.Min(100, avg.Greenery/2),
	}
	r.TotalScore = Round2((r.EnergyScore + r.WaterScore + r.WasteScore + r.GreeneryScore) / 4)
	return r
}

// Round2 rounds to two decimal places, halves away from zero: 0.125 becomes
// 0.13, not the banker's 0.12.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
