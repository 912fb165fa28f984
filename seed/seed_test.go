// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-ask/models"
	"github.com/danielhkuo/quickly-ask/questions"
	"github.com/danielhkuo/quickly-ask/testutil"
)

func TestDefault(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	for _, info := range models.Subjects {
		assert.Len(t, data[info.ID], 2, info.ID)
	}
	assert.Equal(t, "What is the Pythagorean theorem?", data[models.SubjectSystems][0].Question)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    int
	}{
		{"single subject", "costs:\n  - question: Q\n    answer: A\n", false, 1},
		{"empty document", "", false, 0},
		{"unknown subject", "physics:\n  - question: Q\n    answer: A\n", true, 0},
		{"unknown field", "costs:\n  - question: Q\n    answr: A\n", true, 0},
		{"not a mapping", "- just a list\n", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Load(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			total := 0
			for _, entries := range data {
				total += len(entries)
			}
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestRun(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := questions.NewService(store, 5)

	data, err := Default()
	require.NoError(t, err)

	added, err := Run(context.Background(), svc, data)
	require.NoError(t, err)
	assert.Equal(t, 10, added)

	for _, info := range models.Subjects {
		stored := store.Questions(info.ID)
		require.Len(t, stored, 2)
		assert.Equal(t, info.ID, stored[0].Subject)
	}
}

func TestRun_SkipsInvalid(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := questions.NewService(store, 5)

	data := Data{
		models.SubjectZakat: {
			{Question: "What is nisab?", Answer: "A threshold"},
			{Question: "", Answer: "no question"},
		},
	}

	added, err := Run(context.Background(), svc, data)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Len(t, store.Questions(models.SubjectZakat), 1)
}

func TestRun_InitFails(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.SetFailure(testutil.ErrBackendDown)

	_, err := Run(context.Background(), questions.NewService(store, 5), Data{})
	assert.ErrorIs(t, err, questions.ErrRequestFailed)
}
