package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/middleware"
	"github.com/mapleleafu/lanerunner/models"
	"github.com/mapleleafu/lanerunner/repository"
	"github.com/mapleleafu/lanerunner/responses"
	"github.com/mapleleafu/lanerunner/utils"
)

// FetchUserRuns lists the caller's finished runs. ?difficulty=simple,hard
// narrows the tiers.
func (s *Server) FetchUserRuns(w http.ResponseWriter, r *http.Request) {
	authInfo, ok := middleware.AuthInfo(r)
	if !ok {
		utils.HandleError(w, responses.InternalServerError{Msg: "Error processing request."})
		return
	}

	var difficulties []game.Difficulty
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			d, err := game.ParseDifficulty(strings.TrimSpace(part))
			if err != nil {
				utils.HandleError(w, responses.BadRequestError{Msg: "Difficulty must be one of simple, moderate or hard."})
				return
			}
			difficulties = append(difficulties, d)
		}
	}

	runs, err := s.Runs.ListByUser(r.Context(), authInfo.ID, difficulties)
	if err != nil {
		log.Printf("Error fetching runs of user %s: %v", authInfo.ID, err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to fetch runs."})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(runs))
}

func (s *Server) FetchRunLog(w http.ResponseWriter, r *http.Request) {
	authInfo, ok := middleware.AuthInfo(r)
	if !ok {
		utils.HandleError(w, responses.InternalServerError{Msg: "Error processing request."})
		return
	}

	runID := mux.Vars(r)["runID"]
	runLog, err := s.RunLogs.Find(r.Context(), runID)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid runID format."})
		return
	case errors.Is(err, repository.ErrNotFound):
		utils.HandleError(w, responses.NotFoundError{Msg: "Run not found."})
		return
	case err != nil:
		log.Printf("Error fetching run %s: %v", runID, err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Error fetching run."})
		return
	}

	if runLog.UserID != authInfo.ID {
		utils.HandleError(w, responses.ForbiddenError{Msg: "Run belongs to another player."})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(runLog))
}
