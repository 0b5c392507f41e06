/*
Package db handles database connection setup and schema creation.

# Opening

Open selects the driver from the config (sqlite by default, postgres via
-t postgres) and applies the sqlite pragmas the write path depends on:

	conn, err := db.Open(cfg)

Pragmas for sqlite: WAL journal mode, synchronous=NORMAL, busy_timeout=5000,
foreign_keys=ON. WAL keeps aggregation reads from blocking the single
writer; busy_timeout absorbs short lock waits before the submission
engine's own retry loop takes over.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - admins: Single admin credential (bcrypt hash)
  - polls: Poll metadata, JSON-serialized option list, active flag
  - questions: Ordered prompts per poll
  - votes: One row per (question, voter session) selection

# Relationships

	polls 1──* questions
	polls 1──* votes
	questions 1──* votes

Foreign keys use ON DELETE CASCADE. Votes reference options by label, not
by key: the option set lives on the poll row, and membership is enforced
by the submission engine.

# Indexes

Performance indexes on:

  - questions.poll_id
  - votes.(poll_id, voter_session) — duplicate-ballot pre-check
  - votes.(poll_id, question_id, selected_option) — tally queries
*/
package db
