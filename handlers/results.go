package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/yogendersinghh/voting-system/cliparse"
	"github.com/yogendersinghh/voting-system/middleware"
	"github.com/yogendersinghh/voting-system/models"
)

var serverStart = time.Now()

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /results/:id
// Returns per-question tallies for a poll, active or not.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := getPollByID(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	results, err := ComputeResults(h.db, poll)
	if err != nil {
		slog.Error("failed to compute results", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	voters, err := CountDistinctVoters(h.db, pollID)
	if err != nil {
		slog.Error("failed to count voters", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Poll:        poll,
		Results:     results,
		TotalVoters: voters,
	})
}

// GetLeaderboard handles GET /leaderboard/:id
// Returns cross-question option totals ranked descending, plus a
// per-question breakdown with single winners.
func (h *ResultsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := getPollByID(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	leaderboard, breakdowns, totalVotes, err := ComputeLeaderboard(h.db, poll)
	if err != nil {
		slog.Error("failed to compute leaderboard", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute leaderboard")
		return
	}

	voters, err := CountDistinctVoters(h.db, pollID)
	if err != nil {
		slog.Error("failed to count voters", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute leaderboard")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		Poll:              poll,
		Leaderboard:       leaderboard,
		QuestionBreakdown: breakdowns,
		TotalVotes:        totalVotes,
		TotalVoters:       voters,
		TotalQuestions:    len(breakdowns),
	})
}

// Health handles GET /api/health and GET /health
func (h *ResultsHandler) Health(w http.ResponseWriter, r *http.Request) {
	var one int
	if err := h.db.QueryRow(`SELECT 1`).Scan(&one); err != nil {
		slog.Error("health check failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(serverStart).Seconds(),
	})
}
