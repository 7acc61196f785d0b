package handlers

import (
	"context"
	"log"

	"github.com/mapleleafu/lanerunner/models"
)

// saveRun persists a finished server-hosted run: the tier stats, the input
// log in MongoDB and the run row in PostgreSQL. Failures are logged and
// leave the run id empty or the high score flag false.
func (s *Server) saveRun(ctx context.Context, runLog models.RunLog, username string) (string, bool) {
	result := runLog.Result

	isNewHighScore := false
	if s.Stats != nil {
		_, isNew, err := s.Stats.Update(ctx, runLog.Difficulty, result.Score, result.CoinsCollected)
		if err != nil {
			log.Printf("Failed to update %s stats: %v", runLog.Difficulty, err)
		} else if isNew {
			isNewHighScore = true
			s.announce(models.Announcement{
				Kind:       "highScore",
				PlayerName: username,
				Difficulty: string(runLog.Difficulty),
				Score:      result.Score,
			})
		}
	}

	runID := saveRunLogToMongoDB(ctx, s, runLog)
	if runID == "" {
		return "", isNewHighScore
	}
	saveRunToPostgres(ctx, s, runID, runLog)
	return runID, isNewHighScore
}

func saveRunLogToMongoDB(ctx context.Context, s *Server, runLog models.RunLog) string {
	if s.RunLogs == nil {
		return ""
	}
	runID, err := s.RunLogs.Save(ctx, runLog)
	if err != nil {
		log.Printf("Failed to insert run log into MongoDB: %v", err)
		return ""
	}
	log.Printf("Run log saved to MongoDB with ID %s", runID)
	return runID
}

func saveRunToPostgres(ctx context.Context, s *Server, runID string, runLog models.RunLog) {
	if s.Runs == nil {
		return
	}
	err := s.Runs.Record(ctx, models.Run{
		ID:         runID,
		UserID:     runLog.UserID,
		Difficulty: runLog.Difficulty,
		Score:      runLog.Result.Score,
		Coins:      runLog.Result.CoinsCollected,
		TimePlayed: runLog.Result.ElapsedSeconds,
		StartedAt:  runLog.StartedAt,
		FinishedAt: runLog.FinishedAt,
	})
	if err != nil {
		log.Printf("Failed to insert run into PostgreSQL: %v", err)
		return
	}
	log.Printf("Run saved to PostgreSQL with ID %s", runID)
}
