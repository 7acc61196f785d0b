package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mapleleafu/lanerunner/models"
)

type MongoRunLogs struct {
	coll *mongo.Collection
}

func NewMongoRunLogs(db *mongo.Database) *MongoRunLogs {
	return &MongoRunLogs{coll: db.Collection(runLogCollection)}
}

func (m *MongoRunLogs) Save(ctx context.Context, runLog models.RunLog) (string, error) {
	result, err := m.coll.InsertOne(ctx, runLog)
	if err != nil {
		return "", fmt.Errorf("insert run log: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id %v", result.InsertedID)
	}
	return id.Hex(), nil
}

func (m *MongoRunLogs) Find(ctx context.Context, id string) (models.RunLog, error) {
	var runLog models.RunLog
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return runLog, ErrInvalidID
	}

	err = m.coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&runLog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return runLog, ErrNotFound
	}
	if err != nil {
		return runLog, fmt.Errorf("find run log %s: %w", id, err)
	}
	return runLog, nil
}
