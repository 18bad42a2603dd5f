package model

import "time"

type GoalOrigin string

const (
	OriginOnboarding GoalOrigin = "onboarding"
	OriginManual     GoalOrigin = "manual"
)

type Goal struct {
	GoalID    string     `bson:"_id" json:"id"`
	HumanID   string     `bson:"human_id" json:"human_id"` // GOAL-NNNN, unique per user
	UserID    string     `bson:"user_id" json:"user_id"`
	Title     string     `bson:"title" json:"title"`
	LifeArea  LifeArea   `bson:"life_area" json:"life_area"`
	Horizon   Horizon    `bson:"horizon,omitempty" json:"horizon,omitempty"`
	Category  Category   `bson:"category,omitempty" json:"category,omitempty"`
	Status    GoalStatus `bson:"status" json:"status"`
	Origin    GoalOrigin `bson:"origin" json:"origin"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
