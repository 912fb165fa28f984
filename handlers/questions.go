// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/quickly-ask/highlight"
	"github.com/danielhkuo/quickly-ask/middleware"
	"github.com/danielhkuo/quickly-ask/models"
	"github.com/danielhkuo/quickly-ask/questions"
)

type QuestionHandler struct {
	svc *questions.Service
}

func NewQuestionHandler(svc *questions.Service) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

// subjectParam parses an optional subject, defaulting to systems
func subjectParam(s string) (models.Subject, bool) {
	if s == "" {
		return models.DefaultSubject, true
	}
	return models.ParseSubject(s)
}

// Subjects handles GET /subjects
func (h *QuestionHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SubjectsResponse{
		Subjects: models.Subjects,
		Default:  models.DefaultSubject,
	})
}

// Search handles GET /questions?subject=&q=
func (h *QuestionHandler) Search(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectParam(r.URL.Query().Get("subject"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown subject")
		return
	}
	query := r.URL.Query().Get("q")

	found, err := h.svc.Search(r.Context(), subject, query)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to fetch questions")
		return
	}

	results := make([]models.SearchResult, 0, len(found))
	for _, q := range found {
		results = append(results, highlight.Result(q, query))
	}

	middleware.JSONResponse(w, http.StatusOK, models.SearchResponse{
		Subject: subject,
		Query:   query,
		Results: results,
	})
}

// Create handles POST /questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	subject, ok := subjectParam(req.Subject)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown subject")
		return
	}

	q, err := h.svc.Add(r.Context(), subject, req.Question, req.Answer)
	switch {
	case errors.Is(err, questions.ErrInvalidQuestion):
		middleware.ErrorResponse(w, http.StatusBadRequest, "question and answer are required")
		return
	case err != nil:
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to add question")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, q)
}

// Delete handles DELETE /questions/{subject}/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, ok := models.ParseSubject(r.PathValue("subject"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown subject")
		return
	}

	err := h.svc.Delete(r.Context(), subject, r.PathValue("id"))
	switch {
	case errors.Is(err, questions.ErrMissingID):
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	case err != nil:
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to delete question")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health
func (h *QuestionHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		http.Error(w, "backend unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
