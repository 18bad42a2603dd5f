package usecase

import (
	"context"
	"strings"
	"time"

	"main/model"

	"github.com/google/uuid"
)

type GoalService struct {
	stores Stores
	now    nowFunc
}

func NewGoalService(stores Stores) *GoalService {
	return &GoalService{stores: stores, now: time.Now}
}

// Create allocates the next GOAL-NNNN and inserts the goal, both inside one
// atomic unit so concurrent creations cannot draw the same suffix.
func (s *GoalService) Create(ctx context.Context, userID, title string,
	area model.LifeArea, horizon model.Horizon, category model.Category,
	origin model.GoalOrigin) (*model.Goal, error) {

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.NewValidationError("goal title cannot be empty")
	}
	if !model.ValidLifeAreas[area] {
		return nil, model.NewValidationError("unknown life area %q", area)
	}
	if horizon != "" && !model.ValidHorizons[horizon] {
		return nil, model.NewValidationError("unknown horizon %q", horizon)
	}
	if category != "" && !model.ValidCategories[category] {
		return nil, model.NewValidationError("unknown category %q", category)
	}

	var goal *model.Goal
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		ids, err := s.stores.Goals.HumanIDs(ctx, userID)
		if err != nil {
			return err
		}
		now := s.now()
		goal = &model.Goal{
			GoalID:    uuid.New().String(),
			HumanID:   NextHumanID(GoalIDPrefix, ids),
			UserID:    userID,
			Title:     title,
			LifeArea:  area,
			Horizon:   horizon,
			Category:  category,
			Status:    model.GoalActive,
			Origin:    origin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.stores.Goals.Insert(ctx, goal)
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// SetStatus patches a goal's status. Goal transitions carry no scoring side
// effects.
func (s *GoalService) SetStatus(ctx context.Context, userID, humanID string, status model.GoalStatus) (*model.Goal, error) {
	if !model.ValidGoalStatuses[status] {
		return nil, model.NewValidationError("unknown goal status %q", status)
	}

	goal, err := s.stores.Goals.GetByHumanID(ctx, userID, humanID)
	if err != nil {
		return nil, err
	}
	goal.Status = status
	goal.UpdatedAt = s.now()
	if err := s.stores.Goals.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	return s.stores.Goals.List(ctx, userID)
}

func (s *GoalService) ListActive(ctx context.Context, userID string) ([]*model.Goal, error) {
	return s.stores.Goals.ListActive(ctx, userID)
}
