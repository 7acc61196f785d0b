package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/models"
	"github.com/mapleleafu/lanerunner/repository"
	"github.com/mapleleafu/lanerunner/responses"
	"github.com/mapleleafu/lanerunner/utils"
)

func (s *Server) FetchAllLeaderboards(w http.ResponseWriter, r *http.Request) {
	all := make(map[game.Difficulty][]models.LeaderboardEntry, len(game.Difficulties))
	for _, d := range game.Difficulties {
		entries, err := s.Leaderboard.Top(r.Context(), d, models.LeaderboardTop)
		if err != nil {
			log.Printf("Error fetching %s leaderboard: %v", d, err)
			utils.HandleError(w, responses.InternalServerError{Msg: "Failed to fetch leaderboards."})
			return
		}
		all[d] = entries
	}
	utils.HandleSuccess(w, models.SuccessResponse(all))
}

func (s *Server) FetchLeaderboard(w http.ResponseWriter, r *http.Request) {
	difficulty, err := difficultyParam(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	entries, err := s.Leaderboard.Top(r.Context(), difficulty, models.LeaderboardTop)
	if err != nil {
		log.Printf("Error fetching %s leaderboard: %v", difficulty, err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to fetch leaderboard."})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(entries))
}

func (s *Server) AddLeaderboardEntry(w http.ResponseWriter, r *http.Request) {
	var req models.LeaderboardAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}

	name, err := validatePlayerName(req.PlayerName)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if !req.Difficulty.Valid() {
		utils.HandleError(w, responses.BadRequestError{Msg: "Difficulty must be one of simple, moderate or hard."})
		return
	}
	if req.Score < 0 || req.Coins < 0 || req.TimePlayed < 0 {
		utils.HandleError(w, responses.BadRequestError{Msg: "Score, coins and time cannot be negative."})
		return
	}

	entry, rank, err := s.Leaderboard.Add(r.Context(), models.LeaderboardEntry{
		PlayerName: name,
		Difficulty: req.Difficulty,
		Score:      req.Score,
		Coins:      req.Coins,
		TimePlayed: req.TimePlayed,
		Date:       time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Error adding leaderboard entry for %s: %v", name, err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to save score."})
		return
	}

	result := models.LeaderboardAddResult{
		Entry:    entry,
		Rank:     rank,
		IsTopTen: rank <= models.LeaderboardTop,
		Message:  "Score saved!",
	}
	if result.IsTopTen {
		result.Message = "Congratulations! You made the top 10!"
		s.announce(models.Announcement{
			Kind:       "topTen",
			PlayerName: name,
			Difficulty: string(req.Difficulty),
			Score:      req.Score,
			Rank:       rank,
		})
	}
	utils.HandleSuccess(w, models.SuccessResponse(result))
}

// FetchPlayerBest answers with null data when the player has no entry.
func (s *Server) FetchPlayerBest(w http.ResponseWriter, r *http.Request) {
	difficulty, err := difficultyParam(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	name := strings.TrimSpace(mux.Vars(r)["playerName"])

	entry, err := s.Leaderboard.PlayerBest(r.Context(), name, difficulty)
	if errors.Is(err, repository.ErrNotFound) {
		utils.HandleSuccess(w, models.SuccessResponse(nil))
		return
	}
	if err != nil {
		log.Printf("Error fetching best score of %s: %v", name, err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to fetch player score."})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(entry))
}

func (s *Server) CleanupLeaderboard(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.Leaderboard.Cleanup(r.Context(), models.LeaderboardCap)
	if err != nil {
		log.Printf("Error cleaning up leaderboard: %v", err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to clean up leaderboard."})
		return
	}
	log.Printf("Leaderboard cleanup removed %d entries", deleted)
	utils.HandleSuccess(w, models.SuccessResponse(map[string]interface{}{
		"message":      "Cleanup completed",
		"deletedCount": deleted,
	}))
}

func validatePlayerName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)
	if n < models.PlayerNameMin {
		return "", responses.BadRequestError{Msg: "Player name must be at least 2 characters."}
	}
	if n > models.PlayerNameMax {
		return "", responses.BadRequestError{Msg: "Player name must be 20 characters or less."}
	}
	return name, nil
}
