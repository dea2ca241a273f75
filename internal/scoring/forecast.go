package scoring

// Trend labels.
const (
	TrendImproving = "Improving"
	TrendDeclining = "Declining"
	TrendStable    = "Stable"
)

// NextLabel is the series label under which a prediction is displayed.
const NextLabel = "Next"

// Prediction is the one-step forecast of the total score series.
type Prediction struct {
	// Value is nil when the series is too short to fit a line.
	Value *float64 `json:"predicted"`
	Trend string   `json:"trend"`
}

// Forecast fits an ordinary least-squares line to totals (x = 0..n-1) and
// evaluates it at x = n. Fewer than two points yield no prediction and a
// Stable trend. The trend compares the prediction against the last actual
// total by exact equality.
func Forecast(totals []float64) Prediction {
	n := len(totals)
	if n < 2 {
		return Prediction{Trend: TrendStable}
	}

	var sumX, sumY float64
	for i, y := range totals {
		sumX += float64(i)
		sumY += y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, den float64
	for i, y := range totals {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	slope := num / den
	intercept := meanY - slope*meanX

	predicted := Round2(intercept + slope*float64(n))
	last := totals[n-1]

	trend := TrendStable
	switch {
	case predicted > last:
		trend = TrendImproving
	case predicted < last:
		trend = TrendDeclining
	}
	return Prediction{Value: &predicted, Trend: trend}
}
