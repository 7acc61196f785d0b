package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapleleafu/lanerunner/config"
)

const (
	statsCollection       = "game_stats"
	leaderboardCollection = "leaderboard"
	runLogCollection      = "run_logs"
)

func ConnectMongoDB(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Println("Successfully connected to MongoDB")
	return client, nil
}

// EnsureMongoIndexes creates the indexes the stats and leaderboard queries rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(statsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "difficulty", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("stats index: %w", err)
	}

	_, err = db.Collection(leaderboardCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "difficulty", Value: 1}, {Key: "score", Value: -1}}},
		{Keys: bson.D{{Key: "playerName", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("leaderboard indexes: %w", err)
	}

	_, err = db.Collection(runLogCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("run log index: %w", err)
	}
	return nil
}
