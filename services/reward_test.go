package services

import (
	"testing"
	"time"

	"main/model"

	"github.com/stretchr/testify/assert"
)

func TestCaptureScore(t *testing.T) {
	assert.Equal(t, 5, CaptureScore(false))
	assert.Equal(t, 7, CaptureScore(true))
}

func TestPriorityTagScore(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"IiCUp", 3}, // uppercase I, C, U count; lowercase i, p do not
		{"iicup", 0},
		{"IICUP", 5},
		{"IICUPX", 5}, // only the first five positions count
		{"", 0},
		{"1!CUp", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityTagScore(tt.tag), "tag %q", tt.tag)
	}
}

func TestOrganizeScore(t *testing.T) {
	// main quest doubles the base, today adds 5, three high dims add 6,
	// goal+deadline+estimate add 7, block subtracts 2.
	got := OrganizeScore(model.CategoryMainQuest, model.HorizonToday, "IiCUp",
		true, true, true, true)
	assert.Equal(t, 20+5+6+3+2+2-2, got)

	// void filler halves the base, someday adds nothing.
	got = OrganizeScore(model.CategoryVoidFiller, model.HorizonSomeday, "iicup",
		false, false, false, false)
	assert.Equal(t, 5, got)

	// a mental block costs two points
	got = OrganizeScore(model.CategoryVoidFiller, model.HorizonSomeday, "iicup",
		false, false, false, true)
	assert.Equal(t, 3, got)
}

func TestDoneScoreLatePenalty(t *testing.T) {
	deadline := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	completed := deadline.Add(2 * time.Hour)

	res := DoneScore(20, completed, deadline, false, 0, 0)
	// base 30, two hours late = 10% off
	assert.Equal(t, 27, res.Score)
	assert.True(t, res.IsLate)
	assert.Equal(t, 0, res.Gems)
}

func TestDoneScoreLatePenaltyCap(t *testing.T) {
	deadline := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	completed := deadline.Add(100 * time.Hour)

	res := DoneScore(20, completed, deadline, false, 0, 0)
	assert.Equal(t, 15, res.Score) // capped at 50% off
	assert.True(t, res.IsLate)
}

func TestDoneScoreSpeedBonuses(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// under 80% of the estimate while on time: big bonus plus a gem
	res := DoneScore(20, now, time.Time{}, false, 40, 60)
	assert.Equal(t, 40, res.Score)
	assert.False(t, res.IsLate)
	assert.Equal(t, 1, res.Gems)

	// within the estimate but over 80%: small bonus, no gem
	res = DoneScore(20, now, time.Time{}, false, 55, 60)
	assert.Equal(t, 35, res.Score)
	assert.Equal(t, 0, res.Gems)

	// over the estimate: nothing
	res = DoneScore(20, now, time.Time{}, false, 90, 60)
	assert.Equal(t, 30, res.Score)
	assert.Equal(t, 0, res.Gems)

	// a fast finish that is still late earns no gem
	deadline := now.Add(-time.Hour)
	res = DoneScore(20, now, deadline, false, 40, 60)
	assert.Equal(t, 0, res.Gems)
	assert.True(t, res.IsLate)
}

func TestDoneScoreBlockBonusAndFloor(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	res := DoneScore(20, now, time.Time{}, true, 0, 0)
	assert.Equal(t, 35, res.Score)

	// a tiny organize score never rounds the reward below one
	res = DoneScore(0, now, time.Time{}, false, 0, 0)
	assert.Equal(t, 1, res.Score)
}

func TestEvaluateScore(t *testing.T) {
	assert.Equal(t, 6, EvaluateScore(30, 0))
	assert.Equal(t, 6, EvaluateScore(30, -4)) // negative delta adds nothing
	assert.Equal(t, 12, EvaluateScore(30, 2)) // 6 + 3*2
	assert.Equal(t, 16, EvaluateScore(30, 8)) // mood bonus capped at 10
	assert.Equal(t, 1, EvaluateScore(0, 0))   // floor
}

func TestHabitScore(t *testing.T) {
	assert.Equal(t, 5, HabitScore(model.TierEasy, 1))
	assert.Equal(t, 6, HabitScore(model.TierEasy, 14)) // 5 * 1.2
	assert.Equal(t, 24, HabitScore(model.TierPeak, 14))
	// the streak multiplier caps at 2x
	assert.Equal(t, 40, HabitScore(model.TierPeak, 700))
}

func TestMoodDelta(t *testing.T) {
	assert.Equal(t, 10, MoodDelta("despair", "euphoric"))
	assert.Equal(t, -10, MoodDelta("euphoric", "despair"))
	assert.Equal(t, 0, MoodDelta("neutral", "Neutral"))
	// unknown labels sit at the midpoint
	assert.Equal(t, 2, MoodDelta("whatever", "good"))
	assert.Equal(t, 0, MoodDelta("", ""))
}

func TestRank(t *testing.T) {
	assert.Equal(t, "Wanderer", Rank(0))
	assert.Equal(t, "Seeker", Rank(100))
	assert.Equal(t, "Pathfinder", Rank(400))
	assert.Equal(t, "Achiever", Rank(700))
	assert.Equal(t, "Vanguard", Rank(2999))
	assert.Equal(t, "Legend", Rank(3000))
}

func TestEncodePriorityTagRoundTrip(t *testing.T) {
	tag := model.EncodePriorityTag(map[model.PriorityDimension]bool{
		model.DimImportance: true,
		model.DimComplexity: true,
		model.DimUrgency:    true,
	})
	assert.Equal(t, "IiCUp", tag)
	assert.Equal(t, 3, PriorityTagScore(tag))

	assert.Equal(t, "iicup", model.EncodePriorityTag(nil))
}
