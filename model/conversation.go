package model

import "time"

type FlowTag string

const (
	FlowNone             FlowTag = ""
	FlowOnboarding       FlowTag = "onboarding"
	FlowOnboardingManual FlowTag = "onboarding_manual"
	FlowOrganize         FlowTag = "organize"
	FlowHabitCreate      FlowTag = "habit_create"
)

// StepPhase is the sub-state of the current step. A prompt is issued when the
// step is entered (Idle -> AwaitingReply); reaching the same step again while
// still AwaitingReply re-issues nothing, which debounces retried events.
type StepPhase string

const (
	PhaseIdle          StepPhase = "idle"
	PhaseAwaitingReply StepPhase = "awaiting_reply"
)

// ConversationState is the persisted per-user wizard state. One flow variant
// pointer is non-nil at a time, matching the Flow tag; each variant carries
// only the fields its steps use.
type ConversationState struct {
	UserID      string    `bson:"_id" json:"user_id"`
	Flow        FlowTag   `bson:"flow" json:"flow"`
	Step        string    `bson:"step" json:"step"`
	Phase       StepPhase `bson:"phase" json:"phase"`
	LastEventID string    `bson:"last_event_id,omitempty" json:"last_event_id,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`

	Onboarding *OnboardingState `bson:"onboarding,omitempty" json:"onboarding,omitempty"`
	Organize   *OrganizeState   `bson:"organize,omitempty" json:"organize,omitempty"`
	HabitDraft *HabitDraftState `bson:"habit_draft,omitempty" json:"habit_draft,omitempty"`
}

// AreaAnswers collects the three guided-onboarding prompts for one life area.
type AreaAnswers struct {
	Ideal    string `bson:"ideal,omitempty" json:"ideal,omitempty"`
	Current  string `bson:"current,omitempty" json:"current,omitempty"`
	Obstacle string `bson:"obstacle,omitempty" json:"obstacle,omitempty"`
}

type OnboardingState struct {
	AreaIndex int                       `bson:"area_index" json:"area_index"`
	Answers   map[LifeArea]*AreaAnswers `bson:"answers,omitempty" json:"answers,omitempty"`
}

type OrganizeState struct {
	QueueIDs []string `bson:"queue_ids" json:"queue_ids"`
	Pos      int      `bson:"pos" json:"pos"`

	// Answers accumulated for the item at Pos, reset when it commits.
	GoalHumanID string          `bson:"goal_human_id,omitempty" json:"goal_human_id,omitempty"`
	HighDims    map[string]bool `bson:"high_dims,omitempty" json:"high_dims,omitempty"`
	LifeArea    LifeArea        `bson:"life_area,omitempty" json:"life_area,omitempty"`
	Horizon     Horizon         `bson:"horizon,omitempty" json:"horizon,omitempty"`
	ExecType    ExecutionType   `bson:"exec_type,omitempty" json:"exec_type,omitempty"`
}

type HabitDraftState struct {
	Title    string   `bson:"title,omitempty" json:"title,omitempty"`
	LifeArea LifeArea `bson:"life_area,omitempty" json:"life_area,omitempty"`
}

func (s *ConversationState) Active() bool {
	return s != nil && s.Flow != FlowNone
}
