/*
Package handlers contains HTTP request handlers for the voting API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AdminHandler: Admin login
  - PollHandler: Poll CRUD and activation toggle
  - VotingHandler: Ballot submission
  - ResultsHandler: Results, leaderboard, and health

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Poll Management

Admin endpoints manage the poll lifecycle:

	POST   /api/polls             → CreatePoll
	GET    /api/polls             → ListPolls
	GET    /api/polls/{id}        → GetPoll
	PUT    /api/polls/{id}        → UpdatePoll (only while no votes exist)
	PATCH  /api/polls/{id}/toggle → TogglePoll
	DELETE /api/polls/{id}        → DeletePoll

# Voting Flow

Voters submit one ballot covering every question of a poll:

	POST /vote-submission/{id} → SubmitVotes

SubmitBallot validates input, poll state, and the one-ballot-per-session
rule in that order, then commits all rows in one transaction with retries
on lock contention.

# Aggregation

Tallies are computed on read, in aggregate.go:

	results, err := handlers.ComputeResults(db, poll)
	leaderboard, breakdowns, total, err := handlers.ComputeLeaderboard(db, poll)

Results report per-question percentages and flag every option at the
non-zero maximum as a winner. The leaderboard ranks option totals across
questions descending, stored order breaking ties.
*/
package handlers
