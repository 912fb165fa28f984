// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package highlight marks occurrences of a search query inside result text.
package highlight

import (
	"regexp"

	"github.com/danielhkuo/quickly-ask/models"
)

// Split breaks text into segments, marking every case-insensitive occurrence
// of query. The query is matched literally.
func Split(text, query string) []models.Segment {
	if query == "" || text == "" {
		return []models.Segment{{Text: text}}
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []models.Segment{{Text: text}}
	}

	segments := make([]models.Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, models.Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, models.Segment{Text: text[m[0]:m[1]], Match: true})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, models.Segment{Text: text[last:]})
	}
	return segments
}

// Result builds a search result with both fields highlighted
func Result(q models.Question, query string) models.SearchResult {
	return models.SearchResult{
		Question:      q,
		QuestionParts: Split(q.Question, query),
		AnswerParts:   Split(q.Answer, query),
	}
}
