// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/quickly-ask/models"
)

func seg(text string, match bool) models.Segment {
	return models.Segment{Text: text, Match: match}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []models.Segment
	}{
		{
			name:  "empty query",
			text:  "What is zakat?",
			query: "",
			want:  []models.Segment{seg("What is zakat?", false)},
		},
		{
			name:  "no match",
			text:  "What is zakat?",
			query: "tax",
			want:  []models.Segment{seg("What is zakat?", false)},
		},
		{
			name:  "case insensitive keeps original casing",
			text:  "Zakat and zakat",
			query: "ZAKAT",
			want: []models.Segment{
				seg("Zakat", true),
				seg(" and ", false),
				seg("zakat", true),
			},
		},
		{
			name:  "match in the middle",
			text:  "the quadratic formula",
			query: "drat",
			want: []models.Segment{
				seg("the qua", false),
				seg("drat", true),
				seg("ic formula", false),
			},
		},
		{
			name:  "regex metacharacters are literal",
			text:  "a+b (c) a.b",
			query: "(c)",
			want: []models.Segment{
				seg("a+b ", false),
				seg("(c)", true),
				seg(" a.b", false),
			},
		},
		{
			name:  "dot does not match any char",
			text:  "axb a.b",
			query: "a.b",
			want: []models.Segment{
				seg("axb ", false),
				seg("a.b", true),
			},
		},
		{
			name:  "whole text",
			text:  "cost",
			query: "cost",
			want:  []models.Segment{seg("cost", true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text, tt.query))
		})
	}
}

func TestResult(t *testing.T) {
	q := models.Question{ID: "1", Question: "What is pH?", Answer: "The pH scale", Subject: models.SubjectAdministrative}

	r := Result(q, "ph")
	assert.Equal(t, q, r.Question)
	assert.Equal(t, []models.Segment{seg("What is ", false), seg("pH", true), seg("?", false)}, r.QuestionParts)
	assert.Equal(t, []models.Segment{seg("The ", false), seg("pH", true), seg(" scale", false)}, r.AnswerParts)
}
