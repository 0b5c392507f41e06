package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yogendersinghh/voting-system/auth"
	"github.com/yogendersinghh/voting-system/cliparse"
	"github.com/yogendersinghh/voting-system/middleware"
	"github.com/yogendersinghh/voting-system/models"
)

// Submission failure modes, in the order the checks run.
var (
	ErrInvalidBallot    = errors.New("invalid ballot")
	ErrPollNotFound     = errors.New("poll not found or inactive")
	ErrDuplicateVote    = errors.New("session already voted in this poll")
	ErrSubmissionFailed = errors.New("submission failed after retries")
)

// Retry schedule for lock contention: 100ms, 200ms, 400ms between attempts.
const (
	submitMaxRetries  = 3
	submitBackoffBase = 100 * time.Millisecond
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// SubmitVotes handles POST /vote-submission/:id
func (h *VotingHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	// Parse request
	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := SubmitBallot(h.db, pollID, req.VoterSession, req.Votes)
	switch {
	case err == nil:
		slog.Info("ballot submitted", "poll_id", pollID, "questions", len(req.Votes))
		middleware.JSONResponse(w, http.StatusOK, models.SubmitVotesResponse{
			Success: true,
			Message: "Vote submitted successfully",
		})
	case errors.Is(err, ErrInvalidBallot):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote data")
	case errors.Is(err, ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found or inactive")
	case errors.Is(err, ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted in this poll")
	case errors.Is(err, ErrSubmissionFailed):
		slog.Error("ballot submission exhausted retries", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote. Please try again.")
	default:
		slog.Error("ballot submission failed", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote. Please try again.")
	}
}

// SubmitBallot validates and commits a complete ballot for one voter
// session. Checks run in a fixed order so each failure mode is distinct:
// input shape, then poll existence/active state, then the duplicate guard.
// The insert itself is a single transaction retried on lock contention.
//
// The duplicate check and the insert are not one atomic step: two requests
// from the same session racing through the check can in principle both
// commit. Accepted for this domain; the fix would be a unique index over
// (poll_id, question_id, voter_session).
func SubmitBallot(db *sql.DB, pollID, voterSession string, votes []models.VoteEntry) error {
	if len(votes) == 0 || voterSession == "" {
		return ErrInvalidBallot
	}

	// Poll must exist and be active
	var optionsJSON string
	err := db.QueryRow(`
		SELECT options FROM polls WHERE id = $1 AND is_active = 1
	`, pollID).Scan(&optionsJSON)

	if err == sql.ErrNoRows {
		return ErrPollNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}

	// Every selected option must come from the poll's option set
	options, err := decodeOptions(optionsJSON)
	if err != nil {
		return fmt.Errorf("failed to decode poll options: %w", err)
	}
	valid := make(map[string]bool, len(options))
	for _, opt := range options {
		valid[opt] = true
	}
	for _, v := range votes {
		if v.QuestionID == "" || !valid[v.SelectedOption] {
			return ErrInvalidBallot
		}
	}

	// One ballot per session per poll
	var exists bool
	err = db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM votes
			WHERE poll_id = $1 AND voter_session = $2
		)
	`, pollID, voterSession).Scan(&exists)

	if err != nil {
		return fmt.Errorf("failed to check for existing votes: %w", err)
	}
	if exists {
		return ErrDuplicateVote
	}

	// Commit the whole ballot, retrying on lock contention with
	// exponential backoff before giving up.
	for attempt := 0; ; attempt++ {
		err = insertBallot(db, pollID, voterSession, votes)
		if err == nil {
			return nil
		}
		if !isLockContention(err) {
			// Constraint violations and other storage errors are not
			// transient; surface them immediately.
			return fmt.Errorf("failed to insert ballot: %w", err)
		}
		if attempt == submitMaxRetries {
			return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
		}

		delay := submitBackoffBase << attempt
		slog.Warn("ballot insert hit lock contention, retrying",
			"poll_id", pollID,
			"attempt", attempt+1,
			"backoff_ms", delay.Milliseconds(),
		)
		time.Sleep(delay)
	}
}

// insertBallot writes every row of the ballot in one transaction.
// Either all rows land or none do.
func insertBallot(db *sql.DB, pollID, voterSession string, votes []models.VoteEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, v := range votes {
		voteID, err := auth.GenerateID(12)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO votes (id, poll_id, question_id, selected_option, voter_session, voted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, voteID, pollID, v.QuestionID, v.SelectedOption, voterSession, now)

		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// isLockContention reports whether an error is a transient write conflict
// worth retrying. sqlite surfaces these as SQLITE_BUSY ("database is
// locked"); postgres as deadlocks or serialization failures.
func isLockContention(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access")
}
