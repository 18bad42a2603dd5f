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

type HabitRepo struct {
	MongoCollection *mongo.Collection
}

func (r *HabitRepo) Insert(ctx context.Context, habit *model.Habit) error {
	timer := utils.TrackDBOperation("insert", habitsCollection)
	defer timer.ObserveDuration()

	if habit.UserID == "" {
		return errors.New("user ID is required")
	}
	_, err := r.MongoCollection.InsertOne(ctx, habit)
	return err
}

func (r *HabitRepo) Save(ctx context.Context, habit *model.Habit) error {
	timer := utils.TrackDBOperation("replace", habitsCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": habit.HabitID, "user_id": habit.UserID}, habit)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *HabitRepo) Get(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	timer := utils.TrackDBOperation("find", habitsCollection)
	defer timer.ObserveDuration()

	var habit model.Habit
	filter := bson.M{"_id": habitID, "user_id": userID}
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&habit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepo) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	timer := utils.TrackDBOperation("find", habitsCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var habits []*model.Habit
	if err = cursor.All(ctx, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *HabitRepo) HumanIDs(ctx context.Context, userID string) ([]string, error) {
	return humanIDs(ctx, r.MongoCollection, habitsCollection, userID)
}
