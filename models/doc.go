/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username, password
  - CreatePollRequest: title, description, options, questions
  - UpdatePollRequest: same shape as create; full replacement
  - SubmitVotesRequest: votes ([]VoteEntry), voterSession

# Response Types

Types for JSON responses:

  - CreatePollResponse: pollId, voteUrl, resultsUrl
  - SubmitVotesResponse: success, message
  - ResultsResponse: poll, per-question results, totalVoters
  - LeaderboardResponse: leaderboard, questionBreakdown, totals
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata, option set, active flag
  - Question: prompt with display order, owned by a poll
  - Vote: one selected option for one question by one voter session
  - OptionCount / QuestionResult: per-question tallies
  - LeaderboardEntry / QuestionBreakdown: cross-question rankings

Voter sessions are opaque client-generated strings and are never
serialized back out in responses.
*/
package models
