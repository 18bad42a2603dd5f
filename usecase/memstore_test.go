package usecase

import (
	"context"
	"sort"
	"sync"

	"main/model"
)

// memStore backs every store interface with maps so the services can be
// exercised without mongo. Atomically just serializes on a mutex; rollback
// isn't modeled, the tests only drive committing paths.
type memStore struct {
	mu            sync.Mutex
	users         map[string]*model.User
	goals         map[string]*model.Goal
	activities    map[string]*model.Activity
	habits        map[string]*model.Habit
	sessions      []*model.FocusSession
	conversations map[string]*model.ConversationState
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[string]*model.User{},
		goals:         map[string]*model.Goal{},
		activities:    map[string]*model.Activity{},
		habits:        map[string]*model.Habit{},
		conversations: map[string]*model.ConversationState{},
	}
}

func (m *memStore) stores() Stores {
	return Stores{
		Users:         (*memUsers)(m),
		Goals:         (*memGoals)(m),
		Activities:    (*memActivities)(m),
		Habits:        (*memHabits)(m),
		Sessions:      (*memSessions)(m),
		Conversations: (*memConversations)(m),
		Atomic:        (*memAtomic)(m),
	}
}

type memAtomic memStore

func (m *memAtomic) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type memUsers memStore

func (m *memUsers) Get(_ context.Context, userID string) (*model.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memUsers) Insert(_ context.Context, user *model.User) error {
	copied := *user
	m.users[user.UserID] = &copied
	return nil
}

func (m *memUsers) Save(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return model.ErrNotFound
	}
	copied := *user
	m.users[user.UserID] = &copied
	return nil
}

func (m *memUsers) ListAll(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(m.users))
	for _, user := range m.users {
		copied := *user
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type memGoals memStore

func (m *memGoals) Insert(_ context.Context, goal *model.Goal) error {
	copied := *goal
	m.goals[goal.GoalID] = &copied
	return nil
}

func (m *memGoals) Save(_ context.Context, goal *model.Goal) error {
	if _, ok := m.goals[goal.GoalID]; !ok {
		return model.ErrNotFound
	}
	copied := *goal
	m.goals[goal.GoalID] = &copied
	return nil
}

func (m *memGoals) GetByHumanID(_ context.Context, userID, humanID string) (*model.Goal, error) {
	for _, goal := range m.goals {
		if goal.UserID == userID && goal.HumanID == humanID {
			copied := *goal
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memGoals) List(_ context.Context, userID string) ([]*model.Goal, error) {
	var out []*model.Goal
	for _, goal := range m.goals {
		if goal.UserID == userID {
			copied := *goal
			out = append(out, &copied)
		}
	}
	sortGoals(out)
	return out, nil
}

func (m *memGoals) ListActive(_ context.Context, userID string) ([]*model.Goal, error) {
	var out []*model.Goal
	for _, goal := range m.goals {
		if goal.UserID == userID && goal.Status == model.GoalActive {
			copied := *goal
			out = append(out, &copied)
		}
	}
	sortGoals(out)
	return out, nil
}

func (m *memGoals) HumanIDs(_ context.Context, userID string) ([]string, error) {
	var out []string
	for _, goal := range m.goals {
		if goal.UserID == userID {
			out = append(out, goal.HumanID)
		}
	}
	return out, nil
}

func sortGoals(goals []*model.Goal) {
	sort.Slice(goals, func(i, j int) bool { return goals[i].HumanID < goals[j].HumanID })
}

type memActivities memStore

func (m *memActivities) Insert(_ context.Context, activity *model.Activity) error {
	copied := *activity
	m.activities[activity.ActivityID] = &copied
	return nil
}

func (m *memActivities) Save(_ context.Context, activity *model.Activity) error {
	if _, ok := m.activities[activity.ActivityID]; !ok {
		return model.ErrNotFound
	}
	copied := *activity
	m.activities[activity.ActivityID] = &copied
	return nil
}

func (m *memActivities) Get(_ context.Context, userID, activityID string) (*model.Activity, error) {
	activity, ok := m.activities[activityID]
	if !ok || activity.UserID != userID {
		return nil, model.ErrNotFound
	}
	copied := *activity
	return &copied, nil
}

func (m *memActivities) GetByHumanID(_ context.Context, userID, humanID string) (*model.Activity, error) {
	for _, activity := range m.activities {
		if activity.UserID == userID && activity.HumanID == humanID {
			copied := *activity
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memActivities) ListByStatus(_ context.Context, userID string, statuses ...model.ActivityStatus) ([]*model.Activity, error) {
	want := map[model.ActivityStatus]bool{}
	for _, status := range statuses {
		want[status] = true
	}
	var out []*model.Activity
	for _, activity := range m.activities {
		if activity.UserID == userID && want[activity.Status] {
			copied := *activity
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CapturedAt.Equal(out[j].CapturedAt) {
			return out[i].HumanID < out[j].HumanID
		}
		return out[i].CapturedAt.Before(out[j].CapturedAt)
	})
	return out, nil
}

func (m *memActivities) ListByGoal(_ context.Context, userID, goalHumanID string) ([]*model.Activity, error) {
	var out []*model.Activity
	for _, activity := range m.activities {
		if activity.UserID == userID && activity.GoalHumanID == goalHumanID {
			copied := *activity
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HumanID < out[j].HumanID })
	return out, nil
}

func (m *memActivities) CountByStatus(_ context.Context, userID string) (map[model.ActivityStatus]int, error) {
	counts := map[model.ActivityStatus]int{}
	for _, activity := range m.activities {
		if activity.UserID == userID {
			counts[activity.Status]++
		}
	}
	return counts, nil
}

func (m *memActivities) HumanIDs(_ context.Context, userID string) ([]string, error) {
	var out []string
	for _, activity := range m.activities {
		if activity.UserID == userID {
			out = append(out, activity.HumanID)
		}
	}
	return out, nil
}

type memHabits memStore

func (m *memHabits) Insert(_ context.Context, habit *model.Habit) error {
	copied := *habit
	m.habits[habit.HabitID] = &copied
	return nil
}

func (m *memHabits) Save(_ context.Context, habit *model.Habit) error {
	if _, ok := m.habits[habit.HabitID]; !ok {
		return model.ErrNotFound
	}
	copied := *habit
	m.habits[habit.HabitID] = &copied
	return nil
}

func (m *memHabits) Get(_ context.Context, userID, habitID string) (*model.Habit, error) {
	habit, ok := m.habits[habitID]
	if !ok || habit.UserID != userID {
		return nil, model.ErrNotFound
	}
	copied := *habit
	return &copied, nil
}

func (m *memHabits) List(_ context.Context, userID string) ([]*model.Habit, error) {
	var out []*model.Habit
	for _, habit := range m.habits {
		if habit.UserID == userID {
			copied := *habit
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HumanID < out[j].HumanID })
	return out, nil
}

func (m *memHabits) HumanIDs(_ context.Context, userID string) ([]string, error) {
	var out []string
	for _, habit := range m.habits {
		if habit.UserID == userID {
			out = append(out, habit.HumanID)
		}
	}
	return out, nil
}

type memSessions memStore

func (m *memSessions) Insert(_ context.Context, session *model.FocusSession) error {
	copied := *session
	m.sessions = append(m.sessions, &copied)
	return nil
}

func (m *memSessions) ListByActivity(_ context.Context, userID, activityID string) ([]*model.FocusSession, error) {
	var out []*model.FocusSession
	for _, session := range m.sessions {
		if session.UserID == userID && session.ActivityID == activityID {
			copied := *session
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memConversations memStore

func (m *memConversations) Get(_ context.Context, userID string) (*model.ConversationState, error) {
	state, ok := m.conversations[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *state
	return &copied, nil
}

func (m *memConversations) Save(_ context.Context, state *model.ConversationState) error {
	copied := *state
	m.conversations[state.UserID] = &copied
	return nil
}

func (m *memConversations) Delete(_ context.Context, userID string) error {
	delete(m.conversations, userID)
	return nil
}
