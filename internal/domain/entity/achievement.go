package entity

import (
	"strconv"
)

// AchievementDefinition is an admin-managed catalog entry under
// achievements/{id}. Thresholds are strictly ascending.
type AchievementDefinition struct {
	ID         string `firestore:"id" json:"id"`
	Title      string `firestore:"title" json:"title"`
	Subtitle   string `firestore:"subtitle" json:"subtitle"`
	IconName   string `firestore:"iconName" json:"iconName"`
	Thresholds []int  `firestore:"thresholds" json:"thresholds"`
}

// UserAchievementProgress is the per-user singleton document at
// users/{uid}/userAchievements/progress.
type UserAchievementProgress struct {
	Progress map[string]int `firestore:"progress" json:"progress"`
	Levels   map[string]int `firestore:"levels" json:"levels"`
}

func NewUserAchievementProgress() *UserAchievementProgress {
	return &UserAchievementProgress{
		Progress: make(map[string]int),
		Levels:   make(map[string]int),
	}
}

func (p *UserAchievementProgress) EnsureMaps() {
	if p.Progress == nil {
		p.Progress = make(map[string]int)
	}
	if p.Levels == nil {
		p.Levels = make(map[string]int)
	}
}

// LevelForProgress derives the level from scratch: the number of thresholds
// the counter has met or exceeded. Levels are never incremented directly,
// so the counter-to-level mapping cannot drift under retries or
// out-of-order deltas.
func LevelForProgress(thresholds []int, progress int) int {
	level := 0
	for _, threshold := range thresholds {
		if progress >= threshold {
			level++
		}
	}
	return level
}

// Achievement is the view projection of a definition combined with the
// user's counter and level. Derived only, never persisted.
type Achievement struct {
	ID            string  `json:"id"`
	Icon          string  `json:"icon"`
	Title         string  `json:"title"`
	Subtitle      string  `json:"subtitle"`
	ProgressValue int     `json:"progressValue"`
	Thresholds    []int   `json:"thresholds"`
	Level         int     `json:"level"`
	Progress      float64 `json:"progress"`
	LowerText     string  `json:"lowerText"`
	UpperText     string  `json:"upperText"`
}

// ProjectAchievement computes the fractional progress within the current
// threshold band. A zero-width band (top level reached, or no thresholds at
// all) projects to 1.
func ProjectAchievement(def AchievementDefinition, progressValue, level int) Achievement {
	lower := 0
	if level > 0 && level-1 < len(def.Thresholds) {
		lower = def.Thresholds[level-1]
	}

	upper := lower
	if level < len(def.Thresholds) {
		upper = def.Thresholds[level]
	} else if len(def.Thresholds) > 0 {
		upper = def.Thresholds[len(def.Thresholds)-1]
	}

	fraction := 1.0
	if upper > lower {
		fraction = float64(progressValue-lower) / float64(upper-lower)
	}

	return Achievement{
		ID:            def.ID,
		Icon:          def.IconName,
		Title:         def.Title,
		Subtitle:      def.Subtitle,
		ProgressValue: progressValue,
		Thresholds:    def.Thresholds,
		Level:         level,
		Progress:      fraction,
		LowerText:     strconv.Itoa(lower),
		UpperText:     strconv.Itoa(upper),
	}
}
