package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/yogendersinghh/voting-system/auth"
	"github.com/yogendersinghh/voting-system/cliparse"
	"github.com/yogendersinghh/voting-system/db"
	"github.com/yogendersinghh/voting-system/models"
)

// SetupTestDB opens a fresh sqlite database in a per-test temp directory
// and creates the full schema. A file-backed database (not :memory:)
// keeps the pool's connections on one store so concurrent tests see real
// write serialization.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "test.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "test.db",
		DatabaseType:  "sqlite",
		AdminUser:     "admin",
		AdminPassword: "test-password",
	}
}

// CreateTestPoll inserts a poll with its questions and returns the poll ID
// and the question IDs in display order.
func CreateTestPoll(t *testing.T, conn *sql.DB, title string, options, questions []string, active bool) (string, []string) {
	t.Helper()

	pollID := auth.GeneratePollID()
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		t.Fatalf("Failed to encode options: %v", err)
	}

	isActive := 0
	if active {
		isActive = 1
	}

	_, err = conn.Exec(`
		INSERT INTO polls (id, title, description, options, is_active, created_at)
		VALUES ($1, $2, 'A test poll', $3, $4, $5)
	`, pollID, title, string(optionsJSON), isActive, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	questionIDs := make([]string, 0, len(questions))
	for i, text := range questions {
		questionID, err := auth.GenerateID(12)
		if err != nil {
			t.Fatalf("Failed to generate question id: %v", err)
		}
		_, err = conn.Exec(`
			INSERT INTO questions (id, poll_id, question_text, order_num)
			VALUES ($1, $2, $3, $4)
		`, questionID, pollID, text, i)
		if err != nil {
			t.Fatalf("Failed to create test question: %v", err)
		}
		questionIDs = append(questionIDs, questionID)
	}

	return pollID, questionIDs
}

// InsertTestVotes writes one vote row per question for a session,
// bypassing the submission engine. selections maps question ID to the
// chosen option.
func InsertTestVotes(t *testing.T, conn *sql.DB, pollID, voterSession string, selections map[string]string) {
	t.Helper()

	for questionID, option := range selections {
		voteID, err := auth.GenerateID(12)
		if err != nil {
			t.Fatalf("Failed to generate vote id: %v", err)
		}
		_, err = conn.Exec(`
			INSERT INTO votes (id, poll_id, question_id, selected_option, voter_session, voted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, voteID, pollID, questionID, option, voterSession, time.Now())
		if err != nil {
			t.Fatalf("Failed to insert test vote: %v", err)
		}
	}
}

// CreateTestAdmin inserts an admin row with a hashed password.
func CreateTestAdmin(t *testing.T, conn *sql.DB, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO admins (username, password_hash, created_at)
		VALUES ($1, $2, $3)
	`, username, hash, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
}

// CountVoteRows returns the number of vote rows stored for a poll.
func CountVoteRows(t *testing.T, conn *sql.DB, pollID string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// Ballot builds a vote entry list selecting the same option for every
// question, in order.
func Ballot(questionIDs []string, option string) []models.VoteEntry {
	votes := make([]models.VoteEntry, 0, len(questionIDs))
	for _, id := range questionIDs {
		votes = append(votes, models.VoteEntry{QuestionID: id, SelectedOption: option})
	}
	return votes
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
