package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/models"
)

type MongoStats struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStats(db *mongo.Database) *MongoStats {
	return &MongoStats{coll: db.Collection(statsCollection), now: time.Now}
}

func (m *MongoStats) Get(ctx context.Context, d game.Difficulty) (models.GameStats, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"highScore":   0,
		"totalCoins":  0,
		"lastUpdated": m.now(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stats models.GameStats
	err := m.coll.FindOneAndUpdate(ctx, bson.M{"difficulty": d}, update, opts).Decode(&stats)
	if err != nil {
		return stats, fmt.Errorf("get stats %s: %w", d, err)
	}
	return stats, nil
}

func (m *MongoStats) All(ctx context.Context) ([]models.GameStats, error) {
	cursor, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "difficulty", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find stats: %w", err)
	}
	all := []models.GameStats{}
	if err := cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return all, nil
}

func (m *MongoStats) Update(ctx context.Context, d game.Difficulty, score, coins int) (models.GameStats, bool, error) {
	now := m.now()
	update := bson.M{
		"$max": bson.M{"highScore": score},
		"$inc": bson.M{"totalCoins": coins},
		"$set": bson.M{"lastUpdated": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)

	var before models.GameStats
	err := m.coll.FindOneAndUpdate(ctx, bson.M{"difficulty": d}, update, opts).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// First game of the tier: the upsert inserted the document.
		stats, err := m.Get(ctx, d)
		if err != nil {
			return stats, false, err
		}
		return stats, score > 0, nil
	}
	if err != nil {
		return before, false, fmt.Errorf("update stats %s: %w", d, err)
	}

	after := before
	after.TotalCoins += coins
	after.LastUpdated = now
	isNewHighScore := score > before.HighScore
	if isNewHighScore {
		after.HighScore = score
	}
	return after, isNewHighScore, nil
}
