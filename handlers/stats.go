package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mapleleafu/lanerunner/models"
	"github.com/mapleleafu/lanerunner/responses"
	"github.com/mapleleafu/lanerunner/utils"
)

func (s *Server) FetchAllStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.Stats.All(r.Context())
	if err != nil {
		log.Printf("Error fetching stats: %v", err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to fetch stats."})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(all))
}

func (s *Server) FetchStats(w http.ResponseWriter, r *http.Request) {
	difficulty, err := difficultyParam(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	stats, err := s.Stats.Get(r.Context(), difficulty)
	if err != nil {
		log.Printf("Error fetching %s stats: %v", difficulty, err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to fetch stats."})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(stats))
}

func (s *Server) UpdateStats(w http.ResponseWriter, r *http.Request) {
	var req models.StatsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}
	if !req.Difficulty.Valid() {
		utils.HandleError(w, responses.BadRequestError{Msg: "Difficulty must be one of simple, moderate or hard."})
		return
	}
	if req.Score < 0 || req.Coins < 0 {
		utils.HandleError(w, responses.BadRequestError{Msg: "Score and coins cannot be negative."})
		return
	}

	stats, isNewHighScore, err := s.Stats.Update(r.Context(), req.Difficulty, req.Score, req.Coins)
	if err != nil {
		log.Printf("Error updating %s stats: %v", req.Difficulty, err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to update stats."})
		return
	}

	if isNewHighScore {
		log.Printf("New %s high score: %d", req.Difficulty, req.Score)
		s.announce(models.Announcement{Kind: "highScore", Difficulty: string(req.Difficulty), Score: req.Score})
	}
	utils.HandleSuccess(w, models.SuccessResponse(models.StatsUpdateResult{Stats: stats, IsNewHighScore: isNewHighScore}))
}
