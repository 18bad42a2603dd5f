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

type ActivityRepo struct {
	MongoCollection *mongo.Collection
}

func (r *ActivityRepo) Insert(ctx context.Context, activity *model.Activity) error {
	timer := utils.TrackDBOperation("insert", activitiesCollection)
	defer timer.ObserveDuration()

	if activity.UserID == "" {
		return errors.New("user ID is required")
	}
	_, err := r.MongoCollection.InsertOne(ctx, activity)
	return err
}

func (r *ActivityRepo) Save(ctx context.Context, activity *model.Activity) error {
	timer := utils.TrackDBOperation("replace", activitiesCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": activity.ActivityID, "user_id": activity.UserID}, activity)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ActivityRepo) Get(ctx context.Context, userID, activityID string) (*model.Activity, error) {
	timer := utils.TrackDBOperation("find", activitiesCollection)
	defer timer.ObserveDuration()

	var activity model.Activity
	filter := bson.M{"_id": activityID, "user_id": userID}
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepo) GetByHumanID(ctx context.Context, userID, humanID string) (*model.Activity, error) {
	timer := utils.TrackDBOperation("find", activitiesCollection)
	defer timer.ObserveDuration()

	var activity model.Activity
	filter := bson.M{"user_id": userID, "human_id": humanID}
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &activity, nil
}

// ListByStatus returns the user's activities in the given statuses, oldest
// capture first.
func (r *ActivityRepo) ListByStatus(ctx context.Context, userID string, statuses ...model.ActivityStatus) ([]*model.Activity, error) {
	timer := utils.TrackDBOperation("find", activitiesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	if len(statuses) == 1 {
		filter["status"] = statuses[0]
	} else if len(statuses) > 1 {
		filter["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "captured_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepo) ListByGoal(ctx context.Context, userID, goalHumanID string) ([]*model.Activity, error) {
	timer := utils.TrackDBOperation("find", activitiesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "goal_human_id": goalHumanID}
	opts := options.Find().SetSort(bson.D{{Key: "captured_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepo) CountByStatus(ctx context.Context, userID string) (map[model.ActivityStatus]int, error) {
	timer := utils.TrackDBOperation("aggregate", activitiesCollection)
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status model.ActivityStatus `bson:"_id"`
		Count  int                  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[model.ActivityStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ActivityRepo) HumanIDs(ctx context.Context, userID string) ([]string, error) {
	return humanIDs(ctx, r.MongoCollection, activitiesCollection, userID)
}
