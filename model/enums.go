package model

type LifeArea string
type Horizon string
type Category string
type ExecutionType string
type ActivityStatus string
type GoalStatus string
type HabitTier string

const (
	AreaPhysical  LifeArea = "physical"
	AreaMental    LifeArea = "mental"
	AreaCareer    LifeArea = "career"
	AreaFinancial LifeArea = "financial"
	AreaSocial    LifeArea = "social"
	AreaLeisure   LifeArea = "leisure"

	HorizonToday   Horizon = "today"
	HorizonWeek    Horizon = "week"
	HorizonMonth   Horizon = "month"
	HorizonQuarter Horizon = "quarter"
	HorizonAnnum   Horizon = "annum"
	HorizonSomeday Horizon = "someday"

	CategoryMainQuest  Category = "main_quest"
	CategorySideQuest  Category = "side_quest"
	CategoryMainten    Category = "maintenance"
	CategorySocialObl  Category = "social_obligation"
	CategoryVoidFiller Category = "void_filler"

	ExecDeepWork    ExecutionType = "deep_work"
	ExecShallowWork ExecutionType = "shallow_work"
	ExecErrand      ExecutionType = "errand"
	ExecMeeting     ExecutionType = "meeting"

	StatusCaptured     ActivityStatus = "captured"
	StatusOrganized    ActivityStatus = "organized"
	StatusInProgress   ActivityStatus = "in_progress"
	StatusComplete     ActivityStatus = "complete"
	StatusCompleteLate ActivityStatus = "complete_late"
	StatusAbandoned    ActivityStatus = "abandoned"

	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalAbandoned GoalStatus = "abandoned"

	TierEasy   HabitTier = "easy"
	TierMedium HabitTier = "medium"
	TierHard   HabitTier = "hard"
	TierPeak   HabitTier = "peak"
)

// LifeAreas is the onboarding iteration order.
var LifeAreas = []LifeArea{
	AreaPhysical, AreaMental, AreaCareer, AreaFinancial, AreaSocial, AreaLeisure,
}

var ValidLifeAreas = map[LifeArea]bool{
	AreaPhysical: true, AreaMental: true, AreaCareer: true,
	AreaFinancial: true, AreaSocial: true, AreaLeisure: true,
}

var ValidHorizons = map[Horizon]bool{
	HorizonToday: true, HorizonWeek: true, HorizonMonth: true,
	HorizonQuarter: true, HorizonAnnum: true, HorizonSomeday: true,
}

var ValidCategories = map[Category]bool{
	CategoryMainQuest: true, CategorySideQuest: true, CategoryMainten: true,
	CategorySocialObl: true, CategoryVoidFiller: true,
}

var ValidExecutionTypes = map[ExecutionType]bool{
	ExecDeepWork: true, ExecShallowWork: true, ExecErrand: true, ExecMeeting: true,
}

var ValidHabitTiers = map[HabitTier]bool{
	TierEasy: true, TierMedium: true, TierHard: true, TierPeak: true,
}

var ValidGoalStatuses = map[GoalStatus]bool{
	GoalActive: true, GoalCompleted: true, GoalPaused: true, GoalAbandoned: true,
}

// statusRank orders the activity lifecycle; transitions may only move to a
// strictly higher rank.
var statusRank = map[ActivityStatus]int{
	StatusCaptured:     0,
	StatusOrganized:    1,
	StatusInProgress:   2,
	StatusComplete:     3,
	StatusCompleteLate: 3,
	StatusAbandoned:    3,
}

func (s ActivityStatus) CanAdvanceTo(next ActivityStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

func (s ActivityStatus) Terminal() bool {
	return s == StatusComplete || s == StatusCompleteLate || s == StatusAbandoned
}
