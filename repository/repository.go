package repository

import (
	"context"
	"errors"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrInvalidID = errors.New("invalid id")
)

type StatsRepository interface {
	// Get returns the stats of a tier, creating an empty record if needed.
	Get(ctx context.Context, d game.Difficulty) (models.GameStats, error)
	All(ctx context.Context) ([]models.GameStats, error)
	// Update keeps the higher of the stored and the given score and adds coins
	// to the total. It reports whether score beat the stored high score.
	Update(ctx context.Context, d game.Difficulty, score, coins int) (models.GameStats, bool, error)
}

type LeaderboardRepository interface {
	// Add stores the entry and returns it with its id along with its rank
	// among all entries of the tier.
	Add(ctx context.Context, entry models.LeaderboardEntry) (models.LeaderboardEntry, int, error)
	Top(ctx context.Context, d game.Difficulty, limit int) ([]models.LeaderboardEntry, error)
	PlayerBest(ctx context.Context, playerName string, d game.Difficulty) (models.LeaderboardEntry, error)
	// Cleanup keeps the best keep entries of every tier and deletes the rest.
	Cleanup(ctx context.Context, keep int) (int64, error)
}

type RunLogRepository interface {
	Save(ctx context.Context, log models.RunLog) (string, error)
	Find(ctx context.Context, id string) (models.RunLog, error)
}

type RunRepository interface {
	Record(ctx context.Context, run models.Run) error
	ListByUser(ctx context.Context, userID string, difficulties []game.Difficulty) ([]models.Run, error)
}

type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	SaveRefreshToken(ctx context.Context, token models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}
