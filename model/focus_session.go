package model

import "time"

type SessionOutcome string

const (
	SessionFinished  SessionOutcome = "finished"
	SessionAbandoned SessionOutcome = "abandoned"
)

// FocusSession is the analytic record of one execution attempt on an
// activity.
type FocusSession struct {
	SessionID  string         `bson:"_id" json:"id"`
	UserID     string         `bson:"user_id" json:"user_id"`
	ActivityID string         `bson:"activity_id" json:"activity_id"`
	StartedAt  time.Time      `bson:"started_at" json:"started_at"`
	EndedAt    time.Time      `bson:"ended_at" json:"ended_at"`
	Minutes    int            `bson:"minutes" json:"minutes"`
	Outcome    SessionOutcome `bson:"outcome" json:"outcome"`
}
