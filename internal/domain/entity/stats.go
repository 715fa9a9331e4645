package entity

import (
	"fmt"
	"time"
)

// StatsSummary is the per-user aggregate record stored at
// users/{uid}/stats/overview. It is maintained strictly incrementally;
// nothing ever re-scans the item collection.
type StatsSummary struct {
	TotalItems     int            `firestore:"totalItems" json:"totalItems"`
	CompletedItems int            `firestore:"completedItems" json:"completedItems"`
	AverageRating  float64        `firestore:"averageRating" json:"averageRating"`
	CountsByWeek   map[string]int `firestore:"countsByWeek" json:"countsByWeek"`
	CountsByType   map[string]int `firestore:"countsByType" json:"countsByType"`
}

func NewStatsSummary() *StatsSummary {
	return &StatsSummary{
		CountsByWeek: make(map[string]int),
		CountsByType: make(map[string]int),
	}
}

// EnsureMaps makes the count maps safe to index after a Firestore decode,
// which leaves absent maps nil.
func (s *StatsSummary) EnsureMaps() {
	if s.CountsByWeek == nil {
		s.CountsByWeek = make(map[string]int)
	}
	if s.CountsByType == nil {
		s.CountsByType = make(map[string]int)
	}
}

// WeekKey returns the ISO-8601 year-week bucket for a completion date,
// e.g. "2025-W10". Weeks start on Monday.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
