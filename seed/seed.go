// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed loads sample questions from YAML and adds them to the backend.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-ask/models"
	"github.com/danielhkuo/quickly-ask/questions"
)

//go:embed questions.yaml
var defaultQuestions []byte

type Entry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Data maps a subject id to the questions to add under it
type Data map[models.Subject][]Entry

// Default returns the built-in sample set
func Default() (Data, error) {
	return Load(bytes.NewReader(defaultQuestions))
}

// Load parses seed YAML. Unknown subjects and unknown fields are errors.
func Load(r io.Reader) (Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return Data{}, nil
		}
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	for subject := range data {
		if _, ok := models.ParseSubject(string(subject)); !ok {
			return nil, fmt.Errorf("%w: %q", questions.ErrUnknownSubject, subject)
		}
	}
	return data, nil
}

// Run makes sure every collection exists, then adds the questions in
// subject display order. Questions that fail to add are logged and
// skipped. It returns how many were added.
func Run(ctx context.Context, svc *questions.Service, data Data) (int, error) {
	slog.Info("initializing collections")
	if err := svc.InitCollections(ctx); err != nil {
		return 0, err
	}

	slog.Info("seeding questions")
	added := 0
	for _, info := range models.Subjects {
		for _, e := range data[info.ID] {
			if _, err := svc.Add(ctx, info.ID, e.Question, e.Answer); err != nil {
				slog.Error("failed to seed question",
					"collection", info.ID.Collection(),
					"question", e.Question,
					"error", err,
				)
				continue
			}
			added++
		}
	}

	slog.Info("seeding complete", "added", added)
	return added, nil
}
