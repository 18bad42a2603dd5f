package usecase

import (
	"context"
	"time"

	"main/model"
)

// Store access goes through narrow interfaces so the services can be
// exercised against in-memory fakes; the mongo repositories in repository/
// implement them.

type UserStore interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	ListAll(ctx context.Context) ([]*model.User, error)
}

type GoalStore interface {
	Insert(ctx context.Context, goal *model.Goal) error
	Save(ctx context.Context, goal *model.Goal) error
	GetByHumanID(ctx context.Context, userID, humanID string) (*model.Goal, error)
	List(ctx context.Context, userID string) ([]*model.Goal, error)
	ListActive(ctx context.Context, userID string) ([]*model.Goal, error)
	HumanIDs(ctx context.Context, userID string) ([]string, error)
}

type ActivityStore interface {
	Insert(ctx context.Context, activity *model.Activity) error
	Save(ctx context.Context, activity *model.Activity) error
	Get(ctx context.Context, userID, activityID string) (*model.Activity, error)
	GetByHumanID(ctx context.Context, userID, humanID string) (*model.Activity, error)
	ListByStatus(ctx context.Context, userID string, statuses ...model.ActivityStatus) ([]*model.Activity, error)
	ListByGoal(ctx context.Context, userID, goalHumanID string) ([]*model.Activity, error)
	CountByStatus(ctx context.Context, userID string) (map[model.ActivityStatus]int, error)
	HumanIDs(ctx context.Context, userID string) ([]string, error)
}

type HabitStore interface {
	Insert(ctx context.Context, habit *model.Habit) error
	Save(ctx context.Context, habit *model.Habit) error
	Get(ctx context.Context, userID, habitID string) (*model.Habit, error)
	List(ctx context.Context, userID string) ([]*model.Habit, error)
	HumanIDs(ctx context.Context, userID string) ([]string, error)
}

type SessionStore interface {
	Insert(ctx context.Context, session *model.FocusSession) error
	ListByActivity(ctx context.Context, userID, activityID string) ([]*model.FocusSession, error)
}

type ConversationStore interface {
	Get(ctx context.Context, userID string) (*model.ConversationState, error)
	Save(ctx context.Context, state *model.ConversationState) error
	Delete(ctx context.Context, userID string) error
}

/// AtomicRunner is the transactional boundary: fn either commits entirely or
// leaves nothing behind. Lifecycle transitions update the item and the
// owner's aggregates inside one run.
type AtomicRunner interface {
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConversationCache is the optional hot copy of wizard state
// (services.ConversationCache); cache failures are logged, never fatal.
type ConversationCache interface {
	Get(ctx context.Context, userID string) (*model.ConversationState, error)
	Set(ctx context.Context, state *model.ConversationState) error
	Delete(ctx context.Context, userID string) error
}

// Stores bundles everything the services need; main wires the mongo
// repositories in, tests wire the memory fake.
type Stores struct {
	Users         UserStore
	Goals         GoalStore
	Activities    ActivityStore
	Habits        HabitStore
	Sessions      SessionStore
	Conversations ConversationStore
	Atomic        AtomicRunner
}

// nowFunc lets tests pin the clock.
type nowFunc func() time.Time
