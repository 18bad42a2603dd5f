package dto

import (
	"time"

	"main/model"
)

type OrganizeRequest struct {
	GoalID          string     `json:"goal_id"`
	PriorityTag     string     `json:"priority_tag" binding:"omitempty,priority_tag"`
	LifeArea        string     `json:"life_area" binding:"required"`
	Horizon         string     `json:"horizon" binding:"required"`
	ExecutionType   string     `json:"execution_type" binding:"required"`
	Category        string     `json:"category" binding:"required"`
	EstimateMinutes int        `json:"estimate_minutes" binding:"omitempty,min=1"`
	Deadline        *time.Time `json:"deadline"`
	DependsOn       string     `json:"depends_on"`
	MentalBlock     bool       `json:"mental_block"`
}

type OrganizeResponse struct {
	Activity *model.Activity `json:"activity"`
	Score    int             `json:"score"`
}

type SplitRequest struct {
	Parts []string `json:"parts" binding:"required,min=2"`
}

type SplitResponse struct {
	Parent   *model.Activity   `json:"parent"`
	Children []*model.Activity `json:"children"`
	Score    int               `json:"score"`
}

type FinishFocusResponse struct {
	Activity      *model.Activity `json:"activity"`
	Score         int             `json:"score"`
	IsLate        bool            `json:"is_late"`
	Gems          int             `json:"gems"`
	ActualMinutes int             `json:"actual_minutes"`
}

type EvaluateRequest struct {
	FeelingBefore string `json:"feeling_before" binding:"required"`
	FeelingAfter  string `json:"feeling_after" binding:"required"`
}

type EvaluateResponse struct {
	Activity  *model.Activity `json:"activity"`
	MoodDelta int             `json:"mood_delta"`
	Score     int             `json:"score"`
}
