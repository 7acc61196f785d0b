package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mapleleafu/lanerunner/config"
	"github.com/mapleleafu/lanerunner/handlers"
	"github.com/mapleleafu/lanerunner/repository"
)

func main() {
	cfg := config.Load()

	mongoClient, err := repository.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer mongoClient.Disconnect(context.Background())
	mongoDB := mongoClient.Database(cfg.MongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureMongoIndexes(ctx, mongoDB); err != nil {
		log.Fatal(err)
	}
	cancel()

	db, err := repository.ConnectToPostgreSQL(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := repository.EnsureSchema(db); err != nil {
		log.Fatal(err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := handlers.NewHub()
	go hub.Run(runCtx)

	server := &handlers.Server{
		Stats:         repository.NewMongoStats(mongoDB),
		Leaderboard:   repository.NewMongoLeaderboard(mongoDB),
		RunLogs:       repository.NewMongoRunLogs(mongoDB),
		Runs:          repository.NewPostgresRuns(db),
		Users:         repository.NewPostgresUsers(db),
		Hub:           hub,
		JWTSecret:     cfg.JWTSecret,
		TickRate:      cfg.TickRate,
		SnapshotEvery: cfg.SnapshotEvery,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(server, cfg.CORSOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
