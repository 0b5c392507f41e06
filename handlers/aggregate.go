package handlers

import (
	"database/sql"
	"fmt"
	"math"
	"sort"

	"github.com/yogendersinghh/voting-system/models"
)

// ComputeResults tallies every question of a poll. Each question reports
// all of the poll's options in stored order, zero-filled, with percentages
// rounded to the nearest integer. Every option sitting at a non-zero
// maximum is flagged as a winner, so ties produce multiple winners.
func ComputeResults(db *sql.DB, poll models.Poll) ([]models.QuestionResult, error) {
	questions, err := getQuestions(db, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}

	results := []models.QuestionResult{}
	for _, q := range questions {
		counts, err := countQuestionVotes(db, poll.ID, q.ID)
		if err != nil {
			return nil, err
		}

		total := 0
		max := 0
		for _, opt := range poll.Options {
			total += counts[opt]
			if counts[opt] > max {
				max = counts[opt]
			}
		}

		optionCounts := make([]models.OptionCount, 0, len(poll.Options))
		for _, opt := range poll.Options {
			n := counts[opt]
			pct := 0
			if total > 0 {
				pct = int(math.Round(float64(n) * 100 / float64(total)))
			}
			optionCounts = append(optionCounts, models.OptionCount{
				Option:     opt,
				Votes:      n,
				Percentage: pct,
				Winner:     n > 0 && n == max,
			})
		}

		results = append(results, models.QuestionResult{
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Votes:        optionCounts,
			TotalVotes:   total,
		})
	}

	return results, nil
}

// ComputeLeaderboard aggregates option totals across every question of a
// poll and ranks them descending. Equal totals keep the poll's stored
// option order. Each question also gets a per-option breakdown and a
// single winner: the option with the strictly highest count, first in
// stored order on a tie, nil when the question has no votes.
func ComputeLeaderboard(db *sql.DB, poll models.Poll) ([]models.LeaderboardEntry, []models.QuestionBreakdown, int, error) {
	questions, err := getQuestions(db, poll.ID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to query questions: %w", err)
	}

	totals := make(map[string]int, len(poll.Options))
	totalVotes := 0

	breakdowns := []models.QuestionBreakdown{}
	for _, q := range questions {
		counts, err := countQuestionVotes(db, poll.ID, q.ID)
		if err != nil {
			return nil, nil, 0, err
		}

		votes := make(map[string]int, len(poll.Options))
		var winner *models.QuestionWinner
		for _, opt := range poll.Options {
			n := counts[opt]
			votes[opt] = n
			totals[opt] += n
			totalVotes += n
			if n > 0 && (winner == nil || n > winner.Votes) {
				winner = &models.QuestionWinner{Option: opt, Votes: n}
			}
		}

		breakdowns = append(breakdowns, models.QuestionBreakdown{
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Votes:        votes,
			Winner:       winner,
		})
	}

	leaderboard := make([]models.LeaderboardEntry, 0, len(poll.Options))
	for _, opt := range poll.Options {
		leaderboard = append(leaderboard, models.LeaderboardEntry{
			Option: opt,
			Votes:  totals[opt],
		})
	}
	// Stable sort keeps stored option order among equal totals
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].Votes > leaderboard[j].Votes
	})

	return leaderboard, breakdowns, totalVotes, nil
}

// countQuestionVotes returns per-option counts for one question. Options
// with no votes are absent from the map.
func countQuestionVotes(db *sql.DB, pollID, questionID string) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT selected_option, COUNT(*)
		FROM votes
		WHERE poll_id = $1 AND question_id = $2
		GROUP BY selected_option
	`, pollID, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var option string
		var n int
		if err := rows.Scan(&option, &n); err != nil {
			return nil, err
		}
		counts[option] = n
	}

	return counts, rows.Err()
}

// CountDistinctVoters returns how many unique sessions voted in a poll.
func CountDistinctVoters(db *sql.DB, pollID string) (int, error) {
	var n int
	err := db.QueryRow(`
		SELECT COUNT(DISTINCT voter_session) FROM votes WHERE poll_id = $1
	`, pollID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return n, nil
}
