package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints_Breakpoints(t *testing.T) {
	tests := []struct {
		points int
		want   Level
	}{
		{0, LevelBasic},
		{99, LevelBasic},
		{100, LevelIntermediate},
		{299, LevelIntermediate},
		{300, LevelAdvanced},
		{1000, LevelAdvanced},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestPointsToNextLevel(t *testing.T) {
	assert.Equal(t, 100, PointsToNextLevel(0))
	assert.Equal(t, 1, PointsToNextLevel(99))
	assert.Equal(t, 200, PointsToNextLevel(100))
	assert.Equal(t, 180, PointsToNextLevel(120))
	assert.Equal(t, 0, PointsToNextLevel(300))
	assert.Equal(t, 0, PointsToNextLevel(5000))
}

func TestLevel_Ordering(t *testing.T) {
	assert.True(t, LevelAdvanced.AtLeast(LevelBasic))
	assert.True(t, LevelIntermediate.AtLeast(LevelIntermediate))
	assert.False(t, LevelBasic.AtLeast(LevelIntermediate))

	// unknown levels rank below everything
	assert.False(t, Level("Platinum").AtLeast(LevelBasic))
	assert.False(t, Level("Platinum").Valid())
}

func TestLevel_Badge(t *testing.T) {
	assert.Equal(t, "Conscious", LevelBasic.Badge())
	assert.Equal(t, "Engaged", LevelIntermediate.Badge())
	assert.Equal(t, "Sustainable", LevelAdvanced.Badge())
	assert.Empty(t, Level("Platinum").Badge())
}
