package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/yogendersinghh/voting-system/cliparse"
)

// Pragmas the vote-submission path relies on: WAL so readers never block
// the single writer, busy_timeout so short lock waits resolve in-driver,
// foreign_keys so a bad ballot row aborts its whole transaction. Passed
// in the DSN because the driver applies _pragma to every pooled
// connection, unlike a one-off PRAGMA statement.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"cache_size(10000)",
	"temp_store(MEMORY)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// Open connects to the configured database.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver := "sqlite"
	dsn := cfg.DatabaseURL
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	} else {
		dsn = sqliteDSN(cfg.DatabaseURL)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// sqliteDSN turns a plain file path into a DSN carrying the pragma set.
func sqliteDSN(path string) string {
	params := make([]string, 0, len(sqlitePragmas))
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + strings.Join(params, "&")
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// All ids are generated app-side as TEXT so the same DDL and $n statements
// run on both sqlite and postgres. The options column holds the poll's
// ordered option labels as a JSON array; votes reference options by label.
//
// There is intentionally no UNIQUE(poll_id, question_id, voter_session)
// index on votes: the duplicate guard is the submission engine's pre-check,
// and stored behavior matches the system this one replaces.
const schema = `
-- Admin credential
CREATE TABLE IF NOT EXISTS admins (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Polls
CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    options TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL
);

-- Questions
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    question_text TEXT NOT NULL,
    order_num INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_questions_poll_id ON questions(poll_id);

-- Votes
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    selected_option TEXT NOT NULL,
    voter_session TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_votes_poll_session ON votes(poll_id, voter_session);
CREATE INDEX IF NOT EXISTS idx_votes_poll_question_option ON votes(poll_id, question_id, selected_option);
`
