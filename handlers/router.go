package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mapleleafu/lanerunner/middleware"
)

func NewRouter(s *Server, corsOrigin string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS(corsOrigin))
	// Preflight requests must match a route for the CORS middleware to run.
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	// Public routes
	r.HandleFunc("/api/register", s.Register).Methods("POST")
	r.HandleFunc("/api/login", s.Login).Methods("POST")
	r.HandleFunc("/api/logout", s.Logout).Methods("POST")
	r.HandleFunc("/api/refresh/token", s.RefreshToken).Methods("POST")

	r.HandleFunc("/api/stats", s.FetchAllStats).Methods("GET")
	r.HandleFunc("/api/stats/update", s.UpdateStats).Methods("POST")
	r.HandleFunc("/api/stats/{difficulty}", s.FetchStats).Methods("GET")

	r.HandleFunc("/api/leaderboard", s.FetchAllLeaderboards).Methods("GET")
	r.HandleFunc("/api/leaderboard/add", s.AddLeaderboardEntry).Methods("POST")
	r.HandleFunc("/api/leaderboard/player/{playerName}/{difficulty}", s.FetchPlayerBest).Methods("GET")
	r.HandleFunc("/api/leaderboard/{difficulty}", s.FetchLeaderboard).Methods("GET")

	r.HandleFunc("/ws/play/{difficulty}/{token}", s.PlayHandler)

	// Secured routes
	secured := r.PathPrefix("/api").Subrouter()
	secured.Use(middleware.JWTValidationMiddleware(s.JWTSecret))
	secured.HandleFunc("/runs", s.FetchUserRuns).Methods("GET")
	secured.HandleFunc("/runs/{runID}", s.FetchRunLog).Methods("GET")
	secured.HandleFunc("/leaderboard/cleanup", s.CleanupLeaderboard).Methods("DELETE")
	return r
}
