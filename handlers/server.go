package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/repository"
	"github.com/mapleleafu/lanerunner/responses"
)

// Server carries the dependencies shared by every handler.
type Server struct {
	Stats       repository.StatsRepository
	Leaderboard repository.LeaderboardRepository
	RunLogs     repository.RunLogRepository
	Runs        repository.RunRepository
	Users       repository.UserRepository
	Hub         *Hub

	JWTSecret     string
	TickRate      int
	SnapshotEvery int
}

func difficultyParam(r *http.Request) (game.Difficulty, error) {
	d, err := game.ParseDifficulty(mux.Vars(r)["difficulty"])
	if err != nil {
		return "", responses.BadRequestError{Msg: "Difficulty must be one of simple, moderate or hard."}
	}
	return d, nil
}
