package repository

import (
	"context"

	"main/config"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	usersCollection         = "users"
	goalsCollection         = "goals"
	activitiesCollection    = "activities"
	habitsCollection        = "habits"
	sessionsCollection      = "focus_sessions"
	conversationsCollection = "conversations"
)

// Store bundles the per-collection repositories over one mongo database and
// provides the transactional boundary lifecycle transitions run inside.
type Store struct {
	client        *mongo.Client
	users         *UserRepo
	goals         *GoalRepo
	activities    *ActivityRepo
	habits        *HabitRepo
	sessions      *SessionRepo
	conversations *ConversationRepo
}

func NewStore(client *mongo.Client, cfg config.DatabaseConfig) *Store {
	db := client.Database(cfg.DatabaseName)
	return &Store{
		client:        client,
		users:         &UserRepo{MongoCollection: db.Collection(usersCollection)},
		goals:         &GoalRepo{MongoCollection: db.Collection(goalsCollection)},
		activities:    &ActivityRepo{MongoCollection: db.Collection(activitiesCollection)},
		habits:        &HabitRepo{MongoCollection: db.Collection(habitsCollection)},
		sessions:      &SessionRepo{MongoCollection: db.Collection(sessionsCollection)},
		conversations: &ConversationRepo{MongoCollection: db.Collection(conversationsCollection)},
	}
}

func (s *Store) Users() *UserRepo                 { return s.users }
func (s *Store) Goals() *GoalRepo                 { return s.goals }
func (s *Store) Activities() *ActivityRepo        { return s.activities }
func (s *Store) Habits() *HabitRepo               { return s.habits }
func (s *Store) Sessions() *SessionRepo           { return s.sessions }
func (s *Store) Conversations() *ConversationRepo { return s.conversations }

// Atomically runs fn inside one mongo transaction so an item's fields and its
// owner's aggregates update together or not at all. Collection operations
// inside fn must use the context it receives.
func (s *Store) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
