package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Scoring metrics
	ScoreAwardsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_awards_total",
			Help: "Total number of score awards by lifecycle stage",
		},
		[]string{"stage"}, // capture, organize, done, evaluate, habit
	)

	ScorePointsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_points_total",
			Help: "Total points awarded by lifecycle stage",
		},
		[]string{"stage"},
	)

	// Wizard metrics
	WizardStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_steps_total",
			Help: "Total number of wizard steps processed",
		},
		[]string{"flow"},
	)

	// Reminder metrics
	RemindersSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminder messages sent",
		},
	)
)

// TrackDBOperation returns a timer to wrap one repository call:
//
//	timer := utils.TrackDBOperation("find", "activities")
//	defer timer.ObserveDuration()
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

func TrackScoreAward(stage string, points int) {
	ScoreAwardsTotal.WithLabelValues(stage).Inc()
	ScorePointsTotal.WithLabelValues(stage).Add(float64(points))
}

func TrackWizardStep(flow string) {
	WizardStepsTotal.WithLabelValues(flow).Inc()
}

func TrackReminder() {
	RemindersSentTotal.Inc()
}
