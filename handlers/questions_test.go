// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/quickly-ask/models"
	"github.com/danielhkuo/quickly-ask/questions"
	"github.com/danielhkuo/quickly-ask/testutil"
)

func newQuestionHandler(t *testing.T) (*QuestionHandler, *testutil.MemoryStore) {
	t.Helper()
	store := testutil.NewMemoryStore()
	return NewQuestionHandler(questions.NewService(store, 5)), store
}

func seedQuestions(store *testutil.MemoryStore) {
	store.AddQuestion(models.Question{ID: "1", Question: "What is the Pythagorean theorem?", Answer: "a² + b² = c²", Subject: models.SubjectSystems})
	store.AddQuestion(models.Question{ID: "2", Question: "What is the quadratic formula?", Answer: "x = (-b ± √(b² - 4ac)) / (2a)", Subject: models.SubjectSystems})
	store.AddQuestion(models.Question{ID: "3", Question: "What is nisab?", Answer: "The minimum wealth for zakat", Subject: models.SubjectZakat})
}

func TestSubjects(t *testing.T) {
	h, _ := newQuestionHandler(t)

	w := httptest.NewRecorder()
	h.Subjects(w, testutil.MakeRequest("GET", "/subjects", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SubjectsResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Subjects) != 5 {
		t.Errorf("Expected 5 subjects, got %d", len(resp.Subjects))
	}
	if resp.Default != models.SubjectSystems {
		t.Errorf("Expected default systems, got %s", resp.Default)
	}
}

func TestSearch(t *testing.T) {
	h, store := newQuestionHandler(t)
	seedQuestions(store)

	t.Run("defaults to systems", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Search(w, testutil.MakeRequest("GET", "/questions?q=formula", nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SearchResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Subject != models.SubjectSystems {
			t.Errorf("Expected subject systems, got %s", resp.Subject)
		}
		if len(resp.Results) != 1 || resp.Results[0].ID != "2" {
			t.Fatalf("Expected question 2, got %+v", resp.Results)
		}

		parts := resp.Results[0].QuestionParts
		if len(parts) != 3 || !parts[1].Match || parts[1].Text != "formula" {
			t.Errorf("Expected 'formula' highlighted, got %+v", parts)
		}
	})

	t.Run("other subject", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Search(w, testutil.MakeRequest("GET", "/questions?subject=zakat&q=NISAB", nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SearchResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Results) != 1 || resp.Results[0].ID != "3" {
			t.Errorf("Expected question 3, got %+v", resp.Results)
		}
	})

	t.Run("unknown subject", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Search(w, testutil.MakeRequest("GET", "/questions?subject=physics&q=x", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestSearch_EmptyQuery(t *testing.T) {
	h, store := newQuestionHandler(t)
	seedQuestions(store)

	w := httptest.NewRecorder()
	h.Search(w, testutil.MakeRequest("GET", "/questions?subject=systems&q=", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SearchResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("Expected an empty result list, got %+v", resp.Results)
	}
	if store.Calls() != 0 {
		t.Errorf("Expected no backend calls, got %d", store.Calls())
	}
}

func TestSearch_BackendDown(t *testing.T) {
	h, store := newQuestionHandler(t)
	store.SetFailure(testutil.ErrBackendDown)

	w := httptest.NewRecorder()
	h.Search(w, testutil.MakeRequest("GET", "/questions?q=anything", nil, nil))

	testutil.AssertStatus(t, w, http.StatusBadGateway)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Failed to fetch questions" {
		t.Errorf("Expected 'Failed to fetch questions', got '%s'", resp.Message)
	}
}

func TestCreateQuestion(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		fail           bool
		expectedStatus int
		expectedCalls  int
	}{
		{"valid", models.CreateQuestionRequest{Subject: "costs", Question: "What is opportunity cost?", Answer: "The next best alternative"}, false, http.StatusCreated, 1},
		{"default subject", models.CreateQuestionRequest{Question: "Q?", Answer: "A"}, false, http.StatusCreated, 1},
		{"empty question", models.CreateQuestionRequest{Subject: "costs", Question: "", Answer: "A"}, false, http.StatusBadRequest, 0},
		{"blank answer", models.CreateQuestionRequest{Subject: "costs", Question: "Q?", Answer: "   "}, false, http.StatusBadRequest, 0},
		{"unknown subject", models.CreateQuestionRequest{Subject: "physics", Question: "Q?", Answer: "A"}, false, http.StatusBadRequest, 0},
		{"invalid json", "not an object", false, http.StatusBadRequest, 0},
		{"backend down", models.CreateQuestionRequest{Subject: "costs", Question: "Q?", Answer: "A"}, true, http.StatusBadGateway, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newQuestionHandler(t)
			if tt.fail {
				store.SetFailure(testutil.ErrBackendDown)
			}

			w := httptest.NewRecorder()
			h.Create(w, testutil.MakeRequest("POST", "/questions", tt.body, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if store.Calls() != tt.expectedCalls {
				t.Errorf("Expected %d backend calls, got %d", tt.expectedCalls, store.Calls())
			}

			if tt.expectedStatus == http.StatusCreated {
				var q models.Question
				testutil.AssertJSON(t, w, &q)
				if q.ID == "" {
					t.Error("Expected an id")
				}
				if len(store.Questions(q.Subject)) != 1 {
					t.Errorf("Expected question stored under %s", q.Subject)
				}
			}
		})
	}
}

func TestDeleteQuestion(t *testing.T) {
	h, store := newQuestionHandler(t)
	seedQuestions(store)

	del := func(subject, id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/questions/"+url.PathEscape(subject)+"/"+url.PathEscape(id), nil, nil)
		req.SetPathValue("subject", subject)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.Delete(w, req)
		return w
	}

	testutil.AssertStatus(t, del("zakat", "3"), http.StatusNoContent)
	if len(store.Questions(models.SubjectZakat)) != 0 {
		t.Error("Expected zakat question to be deleted")
	}

	testutil.AssertStatus(t, del("zakat", "3"), http.StatusBadGateway)
	testutil.AssertStatus(t, del("physics", "1"), http.StatusBadRequest)
	testutil.AssertStatus(t, del("systems", " "), http.StatusBadRequest)
}
