package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/models"
)

type MongoLeaderboard struct {
	coll *mongo.Collection
}

func NewMongoLeaderboard(db *mongo.Database) *MongoLeaderboard {
	return &MongoLeaderboard{coll: db.Collection(leaderboardCollection)}
}

func (m *MongoLeaderboard) Add(ctx context.Context, entry models.LeaderboardEntry) (models.LeaderboardEntry, int, error) {
	result, err := m.coll.InsertOne(ctx, entry)
	if err != nil {
		return entry, 0, fmt.Errorf("insert leaderboard entry: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}

	better, err := m.coll.CountDocuments(ctx, bson.M{
		"difficulty": entry.Difficulty,
		"score":      bson.M{"$gt": entry.Score},
	})
	if err != nil {
		return entry, 0, fmt.Errorf("rank leaderboard entry: %w", err)
	}
	entry.Rank = int(better) + 1
	return entry, entry.Rank, nil
}

func (m *MongoLeaderboard) Top(ctx context.Context, d game.Difficulty, limit int) ([]models.LeaderboardEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}, {Key: "date", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := m.coll.Find(ctx, bson.M{"difficulty": d}, opts)
	if err != nil {
		return nil, fmt.Errorf("find leaderboard %s: %w", d, err)
	}

	entries := []models.LeaderboardEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard %s: %w", d, err)
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// PlayerBest matches the name case-insensitively but otherwise exactly.
func (m *MongoLeaderboard) PlayerBest(ctx context.Context, playerName string, d game.Difficulty) (models.LeaderboardEntry, error) {
	filter := bson.M{
		"playerName": exactName(playerName),
		"difficulty": d,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "score", Value: -1}})

	var entry models.LeaderboardEntry
	err := m.coll.FindOne(ctx, filter, opts).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entry, ErrNotFound
	}
	if err != nil {
		return entry, fmt.Errorf("find best of %s: %w", playerName, err)
	}
	return entry, nil
}

func (m *MongoLeaderboard) Cleanup(ctx context.Context, keep int) (int64, error) {
	var deleted int64
	for _, d := range game.Difficulties {
		opts := options.Find().
			SetSort(bson.D{{Key: "score", Value: -1}, {Key: "date", Value: 1}}).
			SetLimit(int64(keep)).
			SetProjection(bson.M{"_id": 1})
		cursor, err := m.coll.Find(ctx, bson.M{"difficulty": d}, opts)
		if err != nil {
			return deleted, fmt.Errorf("find top %s: %w", d, err)
		}
		var top []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.All(ctx, &top); err != nil {
			return deleted, fmt.Errorf("decode top %s: %w", d, err)
		}

		ids := make([]primitive.ObjectID, 0, len(top))
		for _, t := range top {
			ids = append(ids, t.ID)
		}
		result, err := m.coll.DeleteMany(ctx, bson.M{"difficulty": d, "_id": bson.M{"$nin": ids}})
		if err != nil {
			return deleted, fmt.Errorf("cleanup %s: %w", d, err)
		}
		deleted += result.DeletedCount
	}
	return deleted, nil
}

func exactName(name string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
}
