package services

import (
	"math"
	"strings"
	"time"

	"main/model"
)

// Reward computations are pure: no I/O, no clock reads, deterministic for a
// given input. The lifecycle controller feeds them and applies the results.

const (
	captureBase      = 5
	captureLinkBonus = 2

	organizeBase          = 10.0
	organizeGoalBonus     = 3
	organizeDeadlineBonus = 2
	organizeEstimateBonus = 2
	organizeBlockPenalty  = 2
	organizeMinScore      = 1

	doneMultiplier    = 1.5
	latePenaltyPerHr  = 0.05
	latePenaltyCap    = 0.50
	doneBlockBonus    = 5
	speedBonusLarge   = 10 // on time and actual <= 80% of estimate
	speedBonusSmall   = 5  // actual within estimate
	speedGemThreshold = 0.8

	evaluateShare    = 0.2
	evaluateMoodCap  = 10
	evaluateMoodRate = 3
	evaluateMinScore = 1

	habitStreakStep  = 7
	habitStreakBonus = 0.1
	habitStreakCap   = 2.0

	// VitalityLatePenalty is subtracted from the owner's vitality on every
	// late completion, floored at zero.
	VitalityLatePenalty = 5
)

var categoryMultipliers = map[model.Category]float64{
	model.CategoryMainQuest:  2.0,
	model.CategorySideQuest:  1.5,
	model.CategoryMainten:    1.0,
	model.CategorySocialObl:  0.75,
	model.CategoryVoidFiller: 0.5,
}

var horizonBonuses = map[model.Horizon]int{
	model.HorizonToday:   5,
	model.HorizonWeek:    4,
	model.HorizonMonth:   3,
	model.HorizonQuarter: 2,
	model.HorizonAnnum:   1,
	model.HorizonSomeday: 0,
}

var habitTierBases = map[model.HabitTier]float64{
	model.TierEasy:   5,
	model.TierMedium: 10,
	model.TierHard:   15,
	model.TierPeak:   20,
}

// moodScale maps each feeling label onto an 11-point ordered scale. Unknown
// or unset labels sit at the midpoint.
var moodScale = map[string]int{
	"despair":   0,
	"awful":     1,
	"bad":       2,
	"down":      3,
	"meh":       4,
	"neutral":   5,
	"okay":      6,
	"good":      7,
	"great":     8,
	"energized": 9,
	"euphoric":  10,
}

const moodMidpoint = 5

// CaptureScore rewards getting an item out of one's head; attaching a link
// earns a little extra.
func CaptureScore(hasLink bool) int {
	if hasLink {
		return captureBase + captureLinkBonus
	}
	return captureBase
}

// OrganizeScore rewards classifying a captured item. Category scales the
// base, nearer horizons add urgency bonus, each high priority dimension adds
// two points, and goal/deadline/estimate links add small flat bonuses. A
// reported mental block costs a little here (it pays back at completion).
func OrganizeScore(category model.Category, horizon model.Horizon, priorityTag string,
	hasGoal, hasDeadline, hasEstimate, mentalBlock bool) int {

	score := organizeBase * categoryMultipliers[category]
	score += float64(horizonBonuses[horizon])
	score += float64(2 * PriorityTagScore(priorityTag))
	if hasGoal {
		score += organizeGoalBonus
	}
	if hasDeadline {
		score += organizeDeadlineBonus
	}
	if hasEstimate {
		score += organizeEstimateBonus
	}
	if mentalBlock {
		score -= organizeBlockPenalty
	}
	result := int(math.Round(score))
	if result < organizeMinScore {
		return organizeMinScore
	}
	return result
}

// DoneResult is what finishing an item yields: the score, whether it was
// late, and any bonus currency earned.
type DoneResult struct {
	Score  int
	IsLate bool
	Gems   int
}

// DoneScore computes the completion reward. Base is 1.5x the organize score,
// discounted 5% per hour past the deadline (capped at half), with a flat
// bonus for finishing despite a mental block and a speed bonus when timing
// data shows the estimate was met or beaten. Beating 80% of the estimate on
// time also mints one gem.
func DoneScore(organizeScore int, completedAt, deadline time.Time,
	mentalBlock bool, actualMinutes, estimateMinutes int) DoneResult {

	base := float64(organizeScore) * doneMultiplier

	var res DoneResult
	latePenalty := 0.0
	if !deadline.IsZero() && completedAt.After(deadline) {
		res.IsLate = true
		hoursLate := completedAt.Sub(deadline).Hours()
		latePenalty = math.Min(latePenaltyCap, latePenaltyPerHr*hoursLate)
	}

	blockBonus := 0
	if mentalBlock {
		blockBonus = doneBlockBonus
	}

	speedBonus := 0
	if actualMinutes > 0 && estimateMinutes > 0 {
		ratio := float64(actualMinutes) / float64(estimateMinutes)
		switch {
		case ratio <= speedGemThreshold && !res.IsLate:
			speedBonus = speedBonusLarge
			res.Gems = 1
		case ratio <= 1.0:
			speedBonus = speedBonusSmall
		}
	}

	score := int(math.Round(base*(1-latePenalty))) + blockBonus + speedBonus
	if score < 1 {
		score = 1
	}
	res.Score = score
	return res
}

// EvaluateScore rewards the reflection step: a fifth of the done score, plus
// up to ten points when the item left the user feeling better than before.
func EvaluateScore(doneScore, moodDelta int) int {
	score := int(math.Round(evaluateShare * float64(doneScore)))
	if moodDelta > 0 {
		bonus := evaluateMoodRate * moodDelta
		if bonus > evaluateMoodCap {
			bonus = evaluateMoodCap
		}
		score += bonus
	}
	if score < evaluateMinScore {
		return evaluateMinScore
	}
	return score
}

// HabitScore rewards one logged habit session. Every full seven-day streak
// adds ten percent, up to double.
func HabitScore(tier model.HabitTier, streak int) int {
	multiplier := 1.0 + habitStreakBonus*float64(streak/habitStreakStep)
	if multiplier > habitStreakCap {
		multiplier = habitStreakCap
	}
	return int(math.Round(habitTierBases[tier] * multiplier))
}

// MoodScore maps a feeling label onto the 11-point scale.
func MoodScore(label string) int {
	if v, ok := moodScale[strings.ToLower(strings.TrimSpace(label))]; ok {
		return v
	}
	return moodMidpoint
}

// MoodDelta is after minus before on the mood scale.
func MoodDelta(before, after string) int {
	return MoodScore(after) - MoodScore(before)
}

// PriorityTagScore counts the high (uppercase letter) markers in the first
// five positions of the tag string.
func PriorityTagScore(tag string) int {
	count := 0
	for i := 0; i < len(tag) && i < 5; i++ {
		if tag[i] >= 'A' && tag[i] <= 'Z' {
			count++
		}
	}
	return count
}

// Rank tiers by running total score.
var rankTiers = []struct {
	threshold int
	name      string
}{
	{3000, "Legend"},
	{1500, "Vanguard"},
	{700, "Achiever"},
	{300, "Pathfinder"},
	{100, "Seeker"},
	{0, "Wanderer"},
}

func Rank(totalScore int) string {
	for _, tier := range rankTiers {
		if totalScore >= tier.threshold {
			return tier.name
		}
	}
	return rankTiers[len(rankTiers)-1].name
}
