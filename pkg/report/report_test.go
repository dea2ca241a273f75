package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SinglePage(t *testing.T) {
	var buf bytes.Buffer
	pages, err := Render(&buf, Report{
		Year:        2025,
		Lines:       []Line{{Month: 1, Total: 33.75, Water: 20, Waste: 40, Greenery: 75}},
		Overall:     33.75,
		Grade:       "D",
		GeneratedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRender_Paginates(t *testing.T) {
	lines := make([]Line, 0, 60)
	for i := 0; i < 60; i++ {
		lines = append(lines, Line{Month: i%12 + 1, Total: float64(i)})
	}

	var buf bytes.Buffer
	pages, err := Render(&buf, Report{Year: 2024, Lines: lines, Grade: "D"})
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}
