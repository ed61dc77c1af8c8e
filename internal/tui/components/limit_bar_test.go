package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitBar(t *testing.T) {
	bar := NewLimitBar(775000, 1550000).WithWidth(20)
	assert.InDelta(t, 50.0, bar.Percentage(), 0.001)
	assert.Equal(t, 10, bar.Filled())
	assert.False(t, bar.IsOver())
	assert.Contains(t, bar.Render(), "50.0%")

	over := NewLimitBar(2000000, 1000000).WithWidth(10)
	assert.True(t, over.IsOver())
	assert.Equal(t, 10, over.Filled(), "fill is capped at the width")
	assert.Equal(t, 10, strings.Count(over.Render(), "█"))

	none := NewLimitBar(100, 0)
	assert.Zero(t, none.Percentage())
	assert.False(t, none.IsOver())
}
