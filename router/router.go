package router

import (
	"database/sql"
	"net/http"

	"github.com/yogendersinghh/voting-system/cliparse"
	"github.com/yogendersinghh/voting-system/handlers"
	"github.com/yogendersinghh/voting-system/middleware"
	"github.com/yogendersinghh/voting-system/ratelimit"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, limiter *ratelimit.Limiter) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health checks
	mux.HandleFunc("GET /api/health", middleware.WithLogging(resultsHandler.Health))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Admin authentication
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))

	// Poll management (admin operations)
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PUT /api/polls/{id}", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("PATCH /api/polls/{id}/toggle", middleware.WithLogging(pollHandler.TogglePoll))
	mux.HandleFunc("DELETE /api/polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Voting (public, rate limited per client IP)
	mux.HandleFunc("POST /vote-submission/{id}",
		middleware.WithLogging(middleware.RateLimit(limiter, votingHandler.SubmitVotes)))

	// Results retrieval (public)
	mux.HandleFunc("GET /results/{id}", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /leaderboard/{id}", middleware.WithLogging(resultsHandler.GetLeaderboard))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voting-system API v1"))
	})

	return mux
}
