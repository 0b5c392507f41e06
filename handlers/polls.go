package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yogendersinghh/voting-system/auth"
	"github.com/yogendersinghh/voting-system/cliparse"
	"github.com/yogendersinghh/voting-system/middleware"
	"github.com/yogendersinghh/voting-system/models"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// validatePollInput checks the shared create/update rules: a title, at
// least two unique non-empty options, and at least one non-empty question.
func validatePollInput(title string, options, questions []string) string {
	if title == "" {
		return "title is required"
	}
	if len(options) < 2 {
		return "at least 2 options are required"
	}
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		if opt == "" {
			return "options must be non-empty"
		}
		if seen[opt] {
			return "options must be unique"
		}
		seen[opt] = true
	}
	if len(questions) == 0 {
		return "at least 1 question is required"
	}
	for _, q := range questions {
		if q == "" {
			return "questions must be non-empty"
		}
	}
	return ""
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validatePollInput(req.Title, req.Options, req.Questions); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	pollID := auth.GeneratePollID()

	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		slog.Error("failed to encode options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO polls (id, title, description, options, is_active, created_at)
		VALUES ($1, $2, $3, $4, 1, $5)
	`, pollID, req.Title, req.Description, string(optionsJSON), time.Now())

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	if err := insertQuestions(tx, pollID, req.Questions); err != nil {
		slog.Error("failed to insert questions", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "questions", len(req.Questions))

	middleware.JSONResponse(w, http.StatusOK, models.CreatePollResponse{
		Success:    true,
		PollID:     pollID,
		VoteURL:    "/vote.html?id=" + pollID,
		ResultsURL: "/results.html?id=" + pollID,
	})
}

// ListPolls handles GET /api/polls
// Returns all polls newest-first with their distinct voter counts.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT p.id, p.title, p.description, p.options, p.is_active, p.created_at,
		       COUNT(DISTINCT v.voter_session)
		FROM polls p
		LEFT JOIN votes v ON p.id = v.poll_id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var p models.PollSummary
		var optionsJSON string
		var active int
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &optionsJSON, &active, &p.CreatedAt, &p.TotalVoters); err != nil {
			slog.Error("failed to scan poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		p.IsActive = active == 1
		if p.Options, err = decodeOptions(optionsJSON); err != nil {
			slog.Error("failed to decode options", "error", err, "poll_id", p.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		polls = append(polls, p)
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /api/polls/{id}
// Returns poll details with its questions in display order.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
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

	questions, err := getQuestions(h.db, pollID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollWithQuestions{
		Poll:      poll,
		Questions: questions,
	})
}

// UpdatePoll handles PUT /api/polls/{id}
// Rejected once any vote exists; otherwise replaces the poll's metadata,
// options, and questions wholesale.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if _, err := getPollByID(h.db, pollID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	} else if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Options and questions are immutable once any ballot is recorded
	var voteCount int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM votes WHERE poll_id = $1
	`, pollID).Scan(&voteCount)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if voteCount > 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Cannot edit poll with existing votes")
		return
	}

	if msg := validatePollInput(req.Title, req.Options, req.Questions); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		slog.Error("failed to encode options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE polls SET title = $1, description = $2, options = $3 WHERE id = $4
	`, req.Title, req.Description, string(optionsJSON), pollID)
	if err != nil {
		slog.Error("failed to update poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	// Questions are replaced wholesale, not edited in place
	if _, err := tx.Exec(`DELETE FROM questions WHERE poll_id = $1`, pollID); err != nil {
		slog.Error("failed to delete old questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}
	if err := insertQuestions(tx, pollID, req.Questions); err != nil {
		slog.Error("failed to insert questions", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	slog.Info("poll updated", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, models.UpdatePollResponse{
		Success: true,
		Message: "Poll updated successfully",
		PollID:  pollID,
	})
}

// TogglePoll handles PATCH /api/polls/{id}/toggle
func (h *PollHandler) TogglePoll(w http.ResponseWriter, r *http.Request) {
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

	newActive := 0
	if !poll.IsActive {
		newActive = 1
	}

	_, err = h.db.Exec(`UPDATE polls SET is_active = $1 WHERE id = $2`, newActive, pollID)
	if err != nil {
		slog.Error("failed to toggle poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to toggle poll")
		return
	}

	slog.Info("poll toggled", "poll_id", pollID, "is_active", newActive == 1)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleResponse{
		Success:  true,
		IsActive: newActive == 1,
	})
}

// DeletePoll handles DELETE /api/polls/{id}
// Removes the poll with its questions and votes.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	if _, err := getPollByID(h.db, pollID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	} else if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Delete children explicitly so the cascade doesn't depend on FK
	// enforcement being on (it isn't on every deployment).
	for _, stmt := range []string{
		`DELETE FROM votes WHERE poll_id = $1`,
		`DELETE FROM questions WHERE poll_id = $1`,
		`DELETE FROM polls WHERE id = $1`,
	} {
		if _, err := tx.Exec(stmt, pollID); err != nil {
			slog.Error("failed to delete poll", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{
		Success: true,
		Message: "Poll deleted successfully",
	})
}

// insertQuestions writes the question list with 0-based display order.
func insertQuestions(tx *sql.Tx, pollID string, questions []string) error {
	for i, text := range questions {
		questionID, err := auth.GenerateID(12)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO questions (id, poll_id, question_text, order_num)
			VALUES ($1, $2, $3, $4)
		`, questionID, pollID, text, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// getPollByID loads a poll row. Returns sql.ErrNoRows when absent.
func getPollByID(db *sql.DB, pollID string) (models.Poll, error) {
	var poll models.Poll
	var optionsJSON string
	var active int

	err := db.QueryRow(`
		SELECT id, title, description, options, is_active, created_at
		FROM polls
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Title, &poll.Description, &optionsJSON, &active, &poll.CreatedAt)

	if err != nil {
		return models.Poll{}, err
	}

	poll.IsActive = active == 1
	if poll.Options, err = decodeOptions(optionsJSON); err != nil {
		return models.Poll{}, fmt.Errorf("failed to decode options for poll %s: %w", pollID, err)
	}

	return poll, nil
}

// getQuestions loads a poll's questions ordered by display order.
func getQuestions(db *sql.DB, pollID string) ([]models.Question, error) {
	rows, err := db.Query(`
		SELECT id, poll_id, question_text, order_num
		FROM questions
		WHERE poll_id = $1
		ORDER BY order_num
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.PollID, &q.QuestionText, &q.OrderNum); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func decodeOptions(optionsJSON string) ([]string, error) {
	var options []string
	if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
		return nil, err
	}
	return options, nil
}
