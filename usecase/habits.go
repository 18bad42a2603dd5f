package usecase

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
)

type HabitService struct {
	stores Stores
	now    nowFunc
}

func NewHabitService(stores Stores) *HabitService {
	return &HabitService{stores: stores, now: time.Now}
}

func (s *HabitService) Create(ctx context.Context, userID, title string,
	area model.LifeArea, tiers model.TierSet) (*model.Habit, error) {

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.NewValidationError("habit title cannot be empty")
	}
	if !model.ValidLifeAreas[area] {
		return nil, model.NewValidationError("unknown life area %q", area)
	}
	for _, desc := range []string{tiers.Easy, tiers.Medium, tiers.Hard, tiers.Peak} {
		if strings.TrimSpace(desc) == "" {
			return nil, model.NewValidationError("all four difficulty tiers need a description")
		}
	}

	var habit *model.Habit
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		ids, err := s.stores.Habits.HumanIDs(ctx, userID)
		if err != nil {
			return err
		}
		habit = &model.Habit{
			HabitID:   uuid.New().String(),
			HumanID:   NextHumanID(HabitIDPrefix, ids),
			UserID:    userID,
			Title:     title,
			LifeArea:  area,
			Tiers:     tiers,
			CreatedAt: s.now(),
		}
		return s.stores.Habits.Insert(ctx, habit)
	})
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	return s.stores.Habits.List(ctx, userID)
}

type LogResult struct {
	Habit  *model.Habit
	Score  int
	Streak int
}

// Log records one habit session: streak up, max-streak tracked, score
// credited. The streak never resets here.
func (s *HabitService) Log(ctx context.Context, userID, ref string, tier model.HabitTier) (*LogResult, error) {
	if !model.ValidHabitTiers[tier] {
		return nil, model.NewValidationError("unknown difficulty tier %q", tier)
	}

	var result LogResult
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		habit, err := s.getHabit(ctx, userID, ref)
		if err != nil {
			return err
		}
		user, err := s.stores.Users.Get(ctx, userID)
		if err != nil {
			return err
		}

		habit.Streak++
		if habit.Streak > habit.MaxStreak {
			habit.MaxStreak = habit.Streak
		}
		habit.LastLogAt = s.now()

		score := services.HabitScore(tier, habit.Streak)
		if err := s.stores.Habits.Save(ctx, habit); err != nil {
			return err
		}

		user.TotalScore += score
		if err := s.stores.Users.Save(ctx, user); err != nil {
			return err
		}

		result = LogResult{Habit: habit, Score: score, Streak: habit.Streak}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.TrackScoreAward("habit", result.Score)
	return &result, nil
}

func (s *HabitService) getHabit(ctx context.Context, userID, ref string) (*model.Habit, error) {
	if strings.HasPrefix(ref, HabitIDPrefix+"-") {
		habits, err := s.stores.Habits.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, habit := range habits {
			if habit.HumanID == ref {
				return habit, nil
			}
		}
		return nil, model.ErrNotFound
	}
	return s.stores.Habits.Get(ctx, userID, ref)
}
