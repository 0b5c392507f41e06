package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yogendersinghh/voting-system/models"
	"github.com/yogendersinghh/voting-system/testutil"
)

func TestCreatePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreatePollResponse)
	}{
		{
			name: "valid poll creation",
			requestBody: models.CreatePollRequest{
				Title:       "Team Lunch",
				Description: "Pick a place",
				Options:     []string{"Pizza", "Sushi", "Tacos"},
				Questions:   []string{"Monday preference?", "Friday preference?"},
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.CreatePollResponse) {
				if !resp.Success {
					t.Error("Expected success=true")
				}
				if len(resp.PollID) != 8 {
					t.Errorf("Expected 8-char poll id, got '%s'", resp.PollID)
				}
				if resp.VoteURL != "/vote.html?id="+resp.PollID {
					t.Errorf("Unexpected vote URL: %s", resp.VoteURL)
				}
				if resp.ResultsURL != "/results.html?id="+resp.PollID {
					t.Errorf("Unexpected results URL: %s", resp.ResultsURL)
				}

				// Verify poll was created active
				var active int
				err := db.QueryRow("SELECT is_active FROM polls WHERE id = $1", resp.PollID).Scan(&active)
				if err != nil {
					t.Fatalf("Failed to query poll: %v", err)
				}
				if active != 1 {
					t.Error("Expected new poll to be active")
				}

				// Verify questions landed in order
				questions, err := getQuestions(db, resp.PollID)
				if err != nil {
					t.Fatalf("Failed to query questions: %v", err)
				}
				if len(questions) != 2 {
					t.Fatalf("Expected 2 questions, got %d", len(questions))
				}
				if questions[0].QuestionText != "Monday preference?" || questions[0].OrderNum != 0 {
					t.Errorf("Unexpected first question: %+v", questions[0])
				}
				if questions[1].QuestionText != "Friday preference?" || questions[1].OrderNum != 1 {
					t.Errorf("Unexpected second question: %+v", questions[1])
				}
			},
		},
		{
			name: "missing title",
			requestBody: models.CreatePollRequest{
				Options:   []string{"A", "B"},
				Questions: []string{"Q1"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "only one option",
			requestBody: models.CreatePollRequest{
				Title:     "Test Poll",
				Options:   []string{"A"},
				Questions: []string{"Q1"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate options",
			requestBody: models.CreatePollRequest{
				Title:     "Test Poll",
				Options:   []string{"A", "A"},
				Questions: []string{"Q1"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty option",
			requestBody: models.CreatePollRequest{
				Title:     "Test Poll",
				Options:   []string{"A", ""},
				Questions: []string{"Q1"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "no questions",
			requestBody: models.CreatePollRequest{
				Title:   "Test Poll",
				Options: []string{"A", "B"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty question",
			requestBody: models.CreatePollRequest{
				Title:     "Test Poll",
				Options:   []string{"A", "B"},
				Questions: []string{"Q1", ""},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if str, ok := tt.requestBody.(string); ok {
				req = httptest.NewRequest("POST", "/api/polls", strings.NewReader(str))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = testutil.MakeRequest("POST", "/api/polls", tt.requestBody, nil)
			}
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.checkResponse != nil {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestListPolls(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	pollA, questionsA := testutil.CreateTestPoll(t, db, "Poll A",
		[]string{"Yes", "No"}, []string{"Q1"}, true)
	testutil.CreateTestPoll(t, db, "Poll B",
		[]string{"Red", "Blue"}, []string{"Q1", "Q2"}, false)

	// Two distinct sessions vote in poll A
	testutil.InsertTestVotes(t, db, pollA, "session-1", map[string]string{questionsA[0]: "Yes"})
	testutil.InsertTestVotes(t, db, pollA, "session-2", map[string]string{questionsA[0]: "No"})

	req := testutil.MakeRequest("GET", "/api/polls", nil, nil)
	w := httptest.NewRecorder()

	handler.ListPolls(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var polls []models.PollSummary
	testutil.AssertJSON(t, w, &polls)

	if len(polls) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(polls))
	}

	byID := map[string]models.PollSummary{}
	for _, p := range polls {
		byID[p.ID] = p
	}
	if byID[pollA].TotalVoters != 2 {
		t.Errorf("Expected 2 voters for poll A, got %d", byID[pollA].TotalVoters)
	}
	if byID[pollA].Options[0] != "Yes" {
		t.Errorf("Expected decoded options, got %v", byID[pollA].Options)
	}
}

func TestGetPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	pollID, questionIDs := testutil.CreateTestPoll(t, db, "Detail Poll",
		[]string{"A", "B"}, []string{"First?", "Second?"}, true)

	t.Run("existing poll", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/polls/"+pollID, nil, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PollWithQuestions
		testutil.AssertJSON(t, w, &resp)

		if resp.ID != pollID || resp.Title != "Detail Poll" {
			t.Errorf("Unexpected poll: %+v", resp.Poll)
		}
		if len(resp.Questions) != 2 {
			t.Fatalf("Expected 2 questions, got %d", len(resp.Questions))
		}
		if resp.Questions[0].ID != questionIDs[0] || resp.Questions[1].ID != questionIDs[1] {
			t.Error("Questions not in display order")
		}
	})

	t.Run("missing poll", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/polls/nonexistent", nil, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestUpdatePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	update := models.UpdatePollRequest{
		Title:       "Updated Title",
		Description: "New description",
		Options:     []string{"X", "Y", "Z"},
		Questions:   []string{"New question?"},
	}

	t.Run("replaces questions wholesale", func(t *testing.T) {
		pollID, _ := testutil.CreateTestPoll(t, db, "Original",
			[]string{"A", "B"}, []string{"Old 1?", "Old 2?"}, true)

		req := testutil.MakeRequest("PUT", "/api/polls/"+pollID, update, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.UpdatePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		poll, err := getPollByID(db, pollID)
		if err != nil {
			t.Fatalf("Failed to reload poll: %v", err)
		}
		if poll.Title != "Updated Title" {
			t.Errorf("Expected updated title, got '%s'", poll.Title)
		}
		if len(poll.Options) != 3 || poll.Options[2] != "Z" {
			t.Errorf("Expected updated options, got %v", poll.Options)
		}

		questions, err := getQuestions(db, pollID)
		if err != nil {
			t.Fatalf("Failed to reload questions: %v", err)
		}
		if len(questions) != 1 || questions[0].QuestionText != "New question?" {
			t.Errorf("Expected replaced questions, got %+v", questions)
		}
	})

	t.Run("rejected once votes exist", func(t *testing.T) {
		pollID, questionIDs := testutil.CreateTestPoll(t, db, "Voted Poll",
			[]string{"A", "B"}, []string{"Q1?"}, true)
		testutil.InsertTestVotes(t, db, pollID, "session-1", map[string]string{questionIDs[0]: "A"})

		req := testutil.MakeRequest("PUT", "/api/polls/"+pollID, update, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.UpdatePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)

		// Poll must be untouched
		poll, err := getPollByID(db, pollID)
		if err != nil {
			t.Fatalf("Failed to reload poll: %v", err)
		}
		if poll.Title != "Voted Poll" {
			t.Errorf("Poll was modified despite existing votes: %+v", poll)
		}
		questions, err := getQuestions(db, pollID)
		if err != nil {
			t.Fatalf("Failed to reload questions: %v", err)
		}
		if len(questions) != 1 || questions[0].ID != questionIDs[0] {
			t.Error("Questions were modified despite existing votes")
		}
	})

	t.Run("missing poll", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/polls/nonexistent", update, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.UpdatePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		pollID, _ := testutil.CreateTestPoll(t, db, "Valid Poll",
			[]string{"A", "B"}, []string{"Q1?"}, true)

		bad := models.UpdatePollRequest{Title: "", Options: []string{"A", "B"}, Questions: []string{"Q?"}}
		req := testutil.MakeRequest("PUT", "/api/polls/"+pollID, bad, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.UpdatePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestTogglePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	pollID, _ := testutil.CreateTestPoll(t, db, "Toggle Poll",
		[]string{"A", "B"}, []string{"Q1?"}, true)

	toggle := func(t *testing.T) models.ToggleResponse {
		t.Helper()
		req := testutil.MakeRequest("PATCH", "/api/polls/"+pollID+"/toggle", nil, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		handler.TogglePoll(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ToggleResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	if resp := toggle(t); resp.IsActive {
		t.Error("Expected first toggle to deactivate")
	}
	if resp := toggle(t); !resp.IsActive {
		t.Error("Expected second toggle to reactivate")
	}

	t.Run("missing poll", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/api/polls/nonexistent/toggle", nil, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.TogglePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeletePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	pollID, questionIDs := testutil.CreateTestPoll(t, db, "Doomed Poll",
		[]string{"A", "B"}, []string{"Q1?", "Q2?"}, true)
	testutil.InsertTestVotes(t, db, pollID, "session-1", map[string]string{
		questionIDs[0]: "A",
		questionIDs[1]: "B",
	})

	req := testutil.MakeRequest("DELETE", "/api/polls/"+pollID, nil, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.DeletePoll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// Poll, questions, and votes must all be gone
	for _, q := range []struct {
		name  string
		query string
	}{
		{"polls", "SELECT COUNT(*) FROM polls WHERE id = $1"},
		{"questions", "SELECT COUNT(*) FROM questions WHERE poll_id = $1"},
		{"votes", "SELECT COUNT(*) FROM votes WHERE poll_id = $1"},
	} {
		var n int
		if err := db.QueryRow(q.query, pollID).Scan(&n); err != nil {
			t.Fatalf("Failed to count %s: %v", q.name, err)
		}
		if n != 0 {
			t.Errorf("Expected 0 rows in %s after delete, got %d", q.name, n)
		}
	}

	t.Run("missing poll", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/polls/nonexistent", nil, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
