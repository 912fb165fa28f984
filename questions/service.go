// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-ask/models"
)

var (
	// ErrRequestFailed covers every backend failure
	ErrRequestFailed   = errors.New("request failed")
	ErrInvalidQuestion = errors.New("question and answer are required")
	ErrUnknownSubject  = errors.New("unknown subject")
	ErrMissingID       = errors.New("question id is required")
)

const DefaultPerPage = 5

// Store is a search backend holding one collection per subject
type Store interface {
	Health(ctx context.Context) error
	EnsureCollection(ctx context.Context, subject models.Subject) (created bool, err error)
	Search(ctx context.Context, subject models.Subject, query string, limit int) ([]models.Question, error)
	Create(ctx context.Context, q models.Question) error
	Delete(ctx context.Context, subject models.Subject, id string) error
}

type Service struct {
	store   Store
	perPage int
}

func NewService(store Store, perPage int) *Service {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Service{store: store, perPage: perPage}
}

// CanSubmit reports whether a new question may be submitted
func CanSubmit(question, answer string) bool {
	return strings.TrimSpace(question) != "" && strings.TrimSpace(answer) != ""
}

// Search returns up to perPage questions of subject matching query.
// A blank query returns no results without touching the backend.
func (s *Service) Search(ctx context.Context, subject models.Subject, query string) ([]models.Question, error) {
	if _, ok := models.ParseSubject(string(subject)); !ok {
		return nil, ErrUnknownSubject
	}
	if strings.TrimSpace(query) == "" {
		return []models.Question{}, nil
	}

	if err := s.store.Health(ctx); err != nil {
		slog.Error("search backend unreachable", "error", err)
		return nil, fmt.Errorf("%w: backend unreachable: %v", ErrRequestFailed, err)
	}

	results, err := s.store.Search(ctx, subject, query, s.perPage)
	if err != nil {
		slog.Error("failed to search questions", "subject", subject, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if results == nil {
		results = []models.Question{}
	}
	return results, nil
}

// Add stores a new question under subject and returns it with its id
func (s *Service) Add(ctx context.Context, subject models.Subject, question, answer string) (models.Question, error) {
	if _, ok := models.ParseSubject(string(subject)); !ok {
		return models.Question{}, ErrUnknownSubject
	}
	if !CanSubmit(question, answer) {
		return models.Question{}, ErrInvalidQuestion
	}

	q := models.Question{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   answer,
		Subject:  subject,
	}

	if err := s.store.Create(ctx, q); err != nil {
		slog.Error("failed to add question", "subject", subject, "error", err)
		return models.Question{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	slog.Info("question added", "subject", subject, "question_id", q.ID)
	return q, nil
}

func (s *Service) Delete(ctx context.Context, subject models.Subject, id string) error {
	if _, ok := models.ParseSubject(string(subject)); !ok {
		return ErrUnknownSubject
	}
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	if err := s.store.Delete(ctx, subject, id); err != nil {
		slog.Error("failed to delete question", "subject", subject, "question_id", id, "error", err)
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	slog.Info("question deleted", "subject", subject, "question_id", id)
	return nil
}

// InitCollections makes sure every subject has a collection.
// It keeps going past failures and returns them joined.
func (s *Service) InitCollections(ctx context.Context) error {
	var errs []error
	for _, info := range models.Subjects {
		name := info.ID.Collection()
		created, err := s.store.EnsureCollection(ctx, info.ID)
		if err != nil {
			slog.Error("failed to create collection", "collection", name, "error", err)
			errs = append(errs, fmt.Errorf("collection %s: %w", name, err))
			continue
		}
		if created {
			slog.Info("collection created", "collection", name)
		} else {
			slog.Info("collection already exists", "collection", name)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrRequestFailed, errors.Join(errs...))
	}
	return nil
}

// Ping checks that the backend is reachable
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Health(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return nil
}
