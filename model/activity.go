package model

import "time"

// Activity is the primary tracked unit. Fields fill in progressively as the
// item moves capture -> organize -> execute -> evaluate; a stage's score
// field is set exactly when that stage has been reached.
type Activity struct {
	ActivityID string `bson:"_id" json:"id"`
	HumanID    string `bson:"human_id" json:"human_id"` // ACT-NNNN, unique per user
	UserID     string `bson:"user_id" json:"user_id"`
	ParentID   string `bson:"parent_id,omitempty" json:"parent_id,omitempty"`

	Status ActivityStatus `bson:"status" json:"status"`

	// Capture stage
	RawText    string    `bson:"raw_text" json:"raw_text"`
	Link       string    `bson:"link,omitempty" json:"link,omitempty"`
	CapturedAt time.Time `bson:"captured_at" json:"captured_at"`

	// Organize stage
	GoalHumanID     string        `bson:"goal_human_id,omitempty" json:"goal_human_id,omitempty"`
	PriorityTag     string        `bson:"priority_tag,omitempty" json:"priority_tag,omitempty"`
	LifeArea        LifeArea      `bson:"life_area,omitempty" json:"life_area,omitempty"`
	Horizon         Horizon       `bson:"horizon,omitempty" json:"horizon,omitempty"`
	ExecutionType   ExecutionType `bson:"execution_type,omitempty" json:"execution_type,omitempty"`
	Category        Category      `bson:"category,omitempty" json:"category,omitempty"`
	EstimateMinutes int           `bson:"estimate_minutes,omitempty" json:"estimate_minutes,omitempty"`
	Deadline        time.Time     `bson:"deadline,omitempty" json:"deadline,omitempty"`
	DependsOn       string        `bson:"depends_on,omitempty" json:"depends_on,omitempty"` // ACT-NNNN of a blocker
	MentalBlock     bool          `bson:"mental_block,omitempty" json:"mental_block,omitempty"`
	OrganizedAt     time.Time     `bson:"organized_at,omitempty" json:"organized_at,omitempty"`

	// Execution stage
	FocusStartedAt time.Time `bson:"focus_started_at,omitempty" json:"focus_started_at,omitempty"`
	ActualMinutes  int       `bson:"actual_minutes,omitempty" json:"actual_minutes,omitempty"`
	CompletedAt    time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`

	// Evaluation stage
	FeelingBefore string    `bson:"feeling_before,omitempty" json:"feeling_before,omitempty"`
	FeelingAfter  string    `bson:"feeling_after,omitempty" json:"feeling_after,omitempty"`
	MoodDelta     int       `bson:"mood_delta,omitempty" json:"mood_delta,omitempty"`
	EvaluatedAt   time.Time `bson:"evaluated_at,omitempty" json:"evaluated_at,omitempty"`

	// Per-stage score contributions; TotalScore is their running sum.
	CaptureScore  int `bson:"capture_score,omitempty" json:"capture_score,omitempty"`
	OrganizeScore int `bson:"organize_score,omitempty" json:"organize_score,omitempty"`
	DoneScore     int `bson:"done_score,omitempty" json:"done_score,omitempty"`
	EvaluateScore int `bson:"evaluate_score,omitempty" json:"evaluate_score,omitempty"`
	TotalScore    int `bson:"total_score" json:"total_score"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (a *Activity) HasDeadline() bool {
	return !a.Deadline.IsZero()
}
