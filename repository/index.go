package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_identity").
				SetUnique(true),
		},
	}

	goalIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().
				SetName("user_goal_status"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "human_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_goal_human_id").
				SetUnique(true),
		},
	}

	activityIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "captured_at", Value: 1},
			},
			Options: options.Index().
				SetName("user_activity_status"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "human_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_activity_human_id").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "goal_human_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_activity_goal"),
		},
	}

	habitIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "human_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_habit_human_id").
				SetUnique(true),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "activity_id", Value: 1},
				{Key: "started_at", Value: 1},
			},
			Options: options.Index().
				SetName("user_session_activity"),
		},
	}

	for _, target := range []struct {
		collection string
		indexes    []mongo.IndexModel
	}{
		{usersCollection, userIndexes},
		{goalsCollection, goalIndexes},
		{activitiesCollection, activityIndexes},
		{habitsCollection, habitIndexes},
		{sessionsCollection, sessionIndexes},
	} {
		if _, err := db.Collection(target.collection).Indexes().CreateMany(ctx, target.indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", target.collection, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
