package repository

import (
	"context"

	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// humanIDs projects just the human_id field of every document the user owns
// in the collection. The allocator in usecase scans these; callers must run
// inside the same atomic unit as the insert that consumes the result.
func humanIDs(ctx context.Context, coll *mongo.Collection, collName, userID string) ([]string, error) {
	timer := utils.TrackDBOperation("find", collName)
	defer timer.ObserveDuration()

	opts := options.Find().SetProjection(bson.M{"human_id": 1})
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		HumanID string `bson:"human_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.HumanID)
	}
	return ids, nil
}
