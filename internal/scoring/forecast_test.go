package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast_LinearContinuation(t *testing.T) {
	p := Forecast([]float64{70, 75, 80})
	require.NotNil(t, p.Value)
	assert.Equal(t, 85.0, *p.Value)
	assert.Equal(t, TrendImproving, p.Trend)
}

func TestForecast_FlatSeriesIsStable(t *testing.T) {
	p := Forecast([]float64{80, 80})
	require.NotNil(t, p.Value)
	assert.Equal(t, 80.0, *p.Value)
	assert.Equal(t, TrendStable, p.Trend)
}

func TestForecast_Declining(t *testing.T) {
	p := Forecast([]float64{90, 80, 70})
	require.NotNil(t, p.Value)
	assert.Equal(t, 60.0, *p.Value)
	assert.Equal(t, TrendDeclining, p.Trend)
}

func TestForecast_ShortSeries(t *testing.T) {
	for _, series := range [][]float64{nil, {}, {42}} {
		p := Forecast(series)
		assert.Nil(t, p.Value)
		assert.Equal(t, TrendStable, p.Trend)
	}
}

func TestForecast_RoundsPrediction(t *testing.T) {
	// slope 0.5, intercept 10.3333.., prediction at x=3 is 11.8333..
	p := Forecast([]float64{10, 11.5, 11})
	require.NotNil(t, p.Value)
	assert.Equal(t, 11.83, *p.Value)
	assert.Equal(t, TrendImproving, p.Trend)
}

func TestGrade_Boundaries(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{100, "A"},
		{85.0, "A"},
		{84.99, "B"},
		{70, "B"},
		{69.99, "C"},
		{50, "C"},
		{49.99, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.overall), "overall=%v", tt.overall)
	}
}

func TestOverall(t *testing.T) {
	assert.Equal(t, 0.0, Overall(nil))
	assert.Equal(t, 75.0, Overall([]float64{70, 75, 80}))
	assert.Equal(t, "D", Grade(Overall(nil)))
}
