/*
Package main provides the entry point for the voting system API server.

The server hosts multi-question polls: an admin creates a poll with a
shared option set and a list of questions, voters submit one ballot per
session covering every question, and results and a cross-question
leaderboard are computed on read.

# Starting the Server

The server runs with defaults out of the box:

	go run main.go

Or with flags:

	go run main.go -p 3000 -d voting.db -t sqlite

A .env file in the working directory is loaded if present.

# Configuration

Optional settings (flag / environment variable):

  - -p / PORT: Server port (default: 3000)
  - -d / DATABASE_PATH: sqlite file path or postgres connection string
    (default: voting.db)
  - -t / DATABASE_TYPE: "sqlite" or "postgres" (default: sqlite)
  - -admin-user / ADMIN_USERNAME: Seeded admin username (default: admin)
  - -admin-password / ADMIN_PASSWORD: Seeded admin password

The default admin is created on first boot only; an existing admin row
is never overwritten.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (admin, polls, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - models: Request/response types
  - auth: ID generation and credential handling
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing
  - ratelimit: Fixed-window request limiter
  - testutil: Shared test fixtures

See package documentation for each component.
*/
package main
