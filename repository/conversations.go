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

// ConversationRepo is the durable home of wizard state. Turns can arrive far
// apart and land on different process instances, so state is persisted after
// every step; the redis cache in services is only an accelerator.
type ConversationRepo struct {
	MongoCollection *mongo.Collection
}

func (r *ConversationRepo) Get(ctx context.Context, userID string) (*model.ConversationState, error) {
	timer := utils.TrackDBOperation("find", conversationsCollection)
	defer timer.ObserveDuration()

	var state model.ConversationState
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// Save upserts the state keyed by user; there is at most one active flow per
// user.
func (r *ConversationRepo) Save(ctx context.Context, state *model.ConversationState) error {
	timer := utils.TrackDBOperation("replace", conversationsCollection)
	defer timer.ObserveDuration()

	opts := options.Replace().SetUpsert(true)
	_, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"_id": state.UserID}, state, opts)
	return err
}

func (r *ConversationRepo) Delete(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", conversationsCollection)
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}
