package scoring

// Overall is the mean of all historical totals, zero for an empty history.
func Overall(totals []float64) float64 {
	if len(totals) == 0 {
		return 0
	}
	var sum float64
	for _, t := range totals {
		sum += t
	}
	return sum / float64(len(totals))
}

// Grade maps an overall score to a letter. Each band includes its lower bound.
func Grade(overall float64) string {
	switch {
	case overall >= 85:
		return "A"
	case overall >= 70:
		return "B"
	case overall >= 50:
		return "C"
	default:
		return "D"
	}
}
