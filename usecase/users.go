package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/services"
)

type UserService struct {
	stores Stores
	now    nowFunc
}

func NewUserService(stores Stores) *UserService {
	return &UserService{stores: stores, now: time.Now}
}

// EnsureUser returns the user, creating one on first contact. The second
// return reports whether the user was just created.
func (s *UserService) EnsureUser(ctx context.Context, userID, username string) (*model.User, bool, error) {
	user, err := s.stores.Users.Get(ctx, userID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, false, err
	}

	user = model.NewUser(userID, username, s.now())
	if err := s.stores.Users.Insert(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

type Summary struct {
	TotalScore   int                          `json:"total_score"`
	Vitality     int                          `json:"vitality"`
	Gems         int                          `json:"gems"`
	Rank         string                       `json:"rank"`
	StatusCounts map[model.ActivityStatus]int `json:"status_counts"`
}

func (s *UserService) Summary(ctx context.Context, userID string) (*Summary, error) {
	user, err := s.stores.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.stores.Activities.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalScore:   user.TotalScore,
		Vitality:     user.Vitality,
		Gems:         user.Gems,
		Rank:         services.Rank(user.TotalScore),
		StatusCounts: counts,
	}, nil
}

func (s *UserService) SetReminderInterval(ctx context.Context, userID string, interval time.Duration) error {
	if interval <= 0 {
		return model.NewValidationError("reminder interval must be positive")
	}
	user, err := s.stores.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.Settings.ReminderInterval = interval
	return s.stores.Users.Save(ctx, user)
}
