package repository

import (
	"context"
	"errors"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GoalRepo struct {
	MongoCollection *mongo.Collection
}

func (r *GoalRepo) Insert(ctx context.Context, goal *model.Goal) error {
	timer := utils.TrackDBOperation("insert", goalsCollection)
	defer timer.ObserveDuration()

	if goal.UserID == "" {
		return errors.New("user ID is required")
	}
	_, err := r.MongoCollection.InsertOne(ctx, goal)
	return err
}

func (r *GoalRepo) Save(ctx context.Context, goal *model.Goal) error {
	timer := utils.TrackDBOperation("replace", goalsCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": goal.GoalID, "user_id": goal.UserID}, goal)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *GoalRepo) GetByHumanID(ctx context.Context, userID, humanID string) (*model.Goal, error) {
	timer := utils.TrackDBOperation("find", goalsCollection)
	defer timer.ObserveDuration()

	var goal model.Goal
	filter := bson.M{"user_id": userID, "human_id": humanID}
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepo) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *GoalRepo) ListActive(ctx context.Context, userID string) ([]*model.Goal, error) {
	return r.find(ctx, bson.M{"user_id": userID, "status": model.GoalActive})
}

func (r *GoalRepo) find(ctx context.Context, filter bson.M) ([]*model.Goal, error) {
	timer := utils.TrackDBOperation("find", goalsCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []*model.Goal
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// HumanIDs returns every allocated GOAL-NNNN for the user; the allocator
// scans these for the next free suffix.
func (r *GoalRepo) HumanIDs(ctx context.Context, userID string) ([]string, error) {
	return humanIDs(ctx, r.MongoCollection, goalsCollection, userID)
}
