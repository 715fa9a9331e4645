package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForProgress(t *testing.T) {
	thresholds := []int{1, 10, 50}

	assert.Equal(t, 0, LevelForProgress(thresholds, 0))
	assert.Equal(t, 1, LevelForProgress(thresholds, 1))
	assert.Equal(t, 1, LevelForProgress(thresholds, 9))
	assert.Equal(t, 2, LevelForProgress(thresholds, 10))
	assert.Equal(t, 2, LevelForProgress(thresholds, 49))
	assert.Equal(t, 3, LevelForProgress(thresholds, 50))
	assert.Equal(t, 3, LevelForProgress(thresholds, 999))
}

func TestLevelForProgressEmptyThresholds(t *testing.T) {
	assert.Equal(t, 0, LevelForProgress(nil, 42))
	assert.Equal(t, 0, LevelForProgress([]int{}, 42))
}

func TestProjectAchievementMidBand(t *testing.T) {
	def := AchievementDefinition{
		ID:         "watchMovies",
		Title:      "Movie Buff",
		IconName:   "film",
		Thresholds: []int{1, 10, 50},
	}

	a := ProjectAchievement(def, 5, 1)

	assert.Equal(t, 1, a.Level)
	assert.Equal(t, 5, a.ProgressValue)
	assert.InDelta(t, 4.0/9.0, a.Progress, 1e-9)
	assert.Equal(t, "1", a.LowerText)
	assert.Equal(t, "10", a.UpperText)
}

func TestProjectAchievementBeforeFirstThreshold(t *testing.T) {
	def := AchievementDefinition{Thresholds: []int{3, 10}}

	a := ProjectAchievement(def, 0, 0)

	assert.Equal(t, 0.0, a.Progress)
	assert.Equal(t, "0", a.LowerText)
	assert.Equal(t, "3", a.UpperText)
}

func TestProjectAchievementTopLevel(t *testing.T) {
	def := AchievementDefinition{Thresholds: []int{1, 10, 50}}

	// Past the last threshold the band is zero width and projects to 1
	a := ProjectAchievement(def, 80, 3)

	assert.Equal(t, 1.0, a.Progress)
	assert.Equal(t, "50", a.LowerText)
	assert.Equal(t, "50", a.UpperText)
}

func TestProjectAchievementNoThresholds(t *testing.T) {
	def := AchievementDefinition{ID: "odd"}

	a := ProjectAchievement(def, 7, 0)

	assert.Equal(t, 1.0, a.Progress)
	assert.Equal(t, "0", a.LowerText)
	assert.Equal(t, "0", a.UpperText)
}
