package model

import "time"

// Habit is a recurring template. Each log picks one of four difficulty tiers
// and bumps the streak; the streak never resets on its own.
type Habit struct {
	HabitID   string    `bson:"_id" json:"id"`
	HumanID   string    `bson:"human_id" json:"human_id"` // HAB-NNNN, unique per user
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	LifeArea  LifeArea  `bson:"life_area" json:"life_area"`
	Tiers     TierSet   `bson:"tiers" json:"tiers"`
	Streak    int       `bson:"streak" json:"streak"`
	MaxStreak int       `bson:"max_streak" json:"max_streak"`
	LastLogAt time.Time `bson:"last_log_at,omitempty" json:"last_log_at,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// TierSet describes what each difficulty tier means for this habit
// ("10 pushups" vs "full workout").
type TierSet struct {
	Easy   string `bson:"easy" json:"easy"`
	Medium string `bson:"medium" json:"medium"`
	Hard   string `bson:"hard" json:"hard"`
	Peak   string `bson:"peak" json:"peak"`
}

func (t TierSet) Describe(tier HabitTier) string {
	switch tier {
	case TierEasy:
		return t.Easy
	case TierMedium:
		return t.Medium
	case TierHard:
		return t.Hard
	case TierPeak:
		return t.Peak
	}
	return ""
}
