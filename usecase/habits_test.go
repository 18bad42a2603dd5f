package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workoutTiers = model.TierSet{
	Easy:   "10 min walk",
	Medium: "30 min walk",
	Hard:   "5k run",
	Peak:   "10k run",
}

func TestHabitCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	habit, err := f.habits.Create(ctx, testUserID, "daily movement", model.AreaPhysical, workoutTiers)
	require.NoError(t, err)
	assert.Equal(t, "HAB-0001", habit.HumanID)
	assert.Zero(t, habit.Streak)

	second, err := f.habits.Create(ctx, testUserID, "evening reading", model.AreaMental, workoutTiers)
	require.NoError(t, err)
	assert.Equal(t, "HAB-0002", second.HumanID)
}

func TestHabitCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.habits.Create(ctx, testUserID, "  ", model.AreaPhysical, workoutTiers)
	assert.True(t, model.IsValidation(err))

	incomplete := workoutTiers
	incomplete.Peak = "   "
	_, err = f.habits.Create(ctx, testUserID, "daily movement", model.AreaPhysical, incomplete)
	assert.True(t, model.IsValidation(err))

	_, err = f.habits.Create(ctx, testUserID, "daily movement", "cooking", workoutTiers)
	assert.True(t, model.IsValidation(err))
}

func TestHabitLogBuildsStreakAndScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	habit, err := f.habits.Create(ctx, testUserID, "daily movement", model.AreaPhysical, workoutTiers)
	require.NoError(t, err)

	res, err := f.habits.Log(ctx, testUserID, habit.HumanID, model.TierEasy)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 5, res.Score)

	for i := 0; i < 6; i++ {
		f.advance(24 * time.Hour)
		res, err = f.habits.Log(ctx, testUserID, habit.HumanID, model.TierMedium)
		require.NoError(t, err)
	}
	// seventh log: one full streak week, ten percent on top
	assert.Equal(t, 7, res.Streak)
	assert.Equal(t, 11, res.Score)
	assert.Equal(t, 7, res.Habit.MaxStreak)

	user := f.user(t)
	assert.Equal(t, 5+5*10+11, user.TotalScore)
}

func TestHabitLogUnknownTierAndHabit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	habit, err := f.habits.Create(ctx, testUserID, "daily movement", model.AreaPhysical, workoutTiers)
	require.NoError(t, err)

	_, err = f.habits.Log(ctx, testUserID, habit.HumanID, "legendary")
	assert.True(t, model.IsValidation(err))

	_, err = f.habits.Log(ctx, testUserID, "HAB-0042", model.TierEasy)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
