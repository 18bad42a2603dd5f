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

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func (r *SessionRepo) Insert(ctx context.Context, session *model.FocusSession) error {
	timer := utils.TrackDBOperation("insert", sessionsCollection)
	defer timer.ObserveDuration()

	if session.UserID == "" {
		return errors.New("user ID is required")
	}
	_, err := r.MongoCollection.InsertOne(ctx, session)
	return err
}

func (r *SessionRepo) ListByActivity(ctx context.Context, userID, activityID string) ([]*model.FocusSession, error) {
	timer := utils.TrackDBOperation("find", sessionsCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "activity_id": activityID}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.FocusSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
