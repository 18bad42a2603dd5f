package model

import "time"

const (
	VitalityMax = 100

	// DefaultReminderInterval is applied until the user picks one during
	// onboarding.
	DefaultReminderInterval = 4 * time.Hour
)

type UserSettings struct {
	ReminderInterval time.Duration `bson:"reminder_interval" json:"reminder_interval"`
	LastReminderAt   time.Time     `bson:"last_reminder_at,omitempty" json:"last_reminder_at,omitempty"`
}

type User struct {
	UserID     string       `bson:"user_id" json:"user_id"` // messenger identity
	Username   string       `bson:"username,omitempty" json:"username,omitempty"`
	TotalScore int          `bson:"total_score" json:"total_score"`
	Vitality   int          `bson:"vitality" json:"vitality"` // [0,100], drops on late completions
	Gems       int          `bson:"gems" json:"gems"`         // bonus currency, on-time fast finishes only
	Settings   UserSettings `bson:"settings" json:"settings"`
	CreatedAt  time.Time    `bson:"created_at" json:"created_at"`
}

func NewUser(userID, username string, now time.Time) *User {
	return &User{
		UserID:   userID,
		Username: username,
		Vitality: VitalityMax,
		Settings: UserSettings{
			ReminderInterval: DefaultReminderInterval,
		},
		CreatedAt: now,
	}
}
