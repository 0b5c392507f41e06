/*
Package router defines HTTP routes for the voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, limiter)

# Endpoints

Health:

	GET /health
	GET /api/health

Admin:

	POST   /api/admin/login       - Authenticate admin credentials
	POST   /api/polls             - Create poll
	GET    /api/polls             - List polls with voter counts
	GET    /api/polls/{id}        - Poll details with questions
	PUT    /api/polls/{id}        - Update poll (only while no votes exist)
	PATCH  /api/polls/{id}/toggle - Activate/deactivate
	DELETE /api/polls/{id}        - Delete poll and its data

Voting (public, rate limited per client IP):

	POST /vote-submission/{id} - Submit a complete ballot

Results (public):

	GET /results/{id}     - Per-question tallies
	GET /leaderboard/{id} - Cross-question option ranking

# Handler Initialization

The router creates handler instances with dependency injection:

	adminHandler := handlers.NewAdminHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration. The
rate limiter is shared across requests and applied only to the
vote-submission route.
*/
package router
