package models

import "time"

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Questions   []string `json:"questions"`
}

// UpdatePollRequest replaces a poll's metadata, options, and questions
// wholesale. Only valid while the poll has no votes.
type UpdatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Questions   []string `json:"questions"`
}

type VoteEntry struct {
	QuestionID     string `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
}

type SubmitVotesRequest struct {
	Votes        []VoteEntry `json:"votes"`
	VoterSession string      `json:"voterSession"`
}

// Response types

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CreatePollResponse struct {
	Success    bool   `json:"success"`
	PollID     string `json:"pollId"`
	VoteURL    string `json:"voteUrl"`
	ResultsURL string `json:"resultsUrl"`
}

type UpdatePollResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PollID  string `json:"pollId"`
}

type SubmitVotesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ToggleResponse struct {
	Success  bool `json:"success"`
	IsActive bool `json:"is_active"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// Domain types

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Options     []string  `json:"options"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Question struct {
	ID           string `json:"id"`
	PollID       string `json:"poll_id"`
	QuestionText string `json:"question_text"`
	OrderNum     int    `json:"order_num"`
}

type Vote struct {
	ID             string    `json:"id"`
	PollID         string    `json:"poll_id"`
	QuestionID     string    `json:"question_id"`
	SelectedOption string    `json:"selected_option"`
	VoterSession   string    `json:"-"` // Never expose in JSON
	VotedAt        time.Time `json:"voted_at"`
}

type PollWithQuestions struct {
	Poll
	Questions []Question `json:"questions"`
}

// PollSummary is a Poll plus the distinct-voter count, used in admin listings.
type PollSummary struct {
	Poll
	TotalVoters int `json:"total_voters"`
}

// Aggregation types

// OptionCount is one option's tally within a single question.
type OptionCount struct {
	Option     string `json:"option"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
	Winner     bool   `json:"winner"`
}

type QuestionResult struct {
	QuestionID   string        `json:"questionId"`
	QuestionText string        `json:"questionText"`
	Votes        []OptionCount `json:"votes"`
	TotalVotes   int           `json:"totalVotes"`
}

type ResultsResponse struct {
	Poll        Poll             `json:"poll"`
	Results     []QuestionResult `json:"results"`
	TotalVoters int              `json:"totalVoters"`
}

// LeaderboardEntry is one option's total across every question of a poll.
type LeaderboardEntry struct {
	Option string `json:"option"`
	Votes  int    `json:"votes"`
}

// QuestionWinner identifies the single winning option for one question.
// Nil winner means the question has no votes yet.
type QuestionWinner struct {
	Option string `json:"option"`
	Votes  int    `json:"votes"`
}

type QuestionBreakdown struct {
	QuestionID   string          `json:"questionId"`
	QuestionText string          `json:"questionText"`
	Votes        map[string]int  `json:"votes"`
	Winner       *QuestionWinner `json:"winner"`
}

type LeaderboardResponse struct {
	Poll              Poll                `json:"poll"`
	Leaderboard       []LeaderboardEntry  `json:"leaderboard"`
	QuestionBreakdown []QuestionBreakdown `json:"questionBreakdown"`
	TotalVotes        int                 `json:"totalVotes"`
	TotalVoters       int                 `json:"totalVoters"`
	TotalQuestions    int                 `json:"totalQuestions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
