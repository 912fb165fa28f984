// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Subjects

Questions are grouped under five fixed subjects, each stored in its own
collection:

	SubjectCosts          = "costs"
	SubjectZakat          = "zakat"
	SubjectIssues         = "issues"
	SubjectAdministrative = "administrative"
	SubjectSystems        = "systems"

Use ParseSubject to validate user input and Subject.Collection to get the
backing collection name ("systems" -> "systems_questions").

# Request Types

  - CreateQuestionRequest: subject, question, answer

# Response Types

  - SearchResponse: subject, query, results (with highlighted parts)
  - SubjectsResponse: subjects, default
  - CreateSessionResponse: session_id, call
  - TapResponse: triggered, call
  - ErrorResponse: error, message

# Domain Types

  - Question: id, question, answer, subject
  - Segment: highlighted text piece
  - CallSnapshot: decoy overlay state at a point in time

# Call States

	CallIdle      = "idle"
	CallIncoming  = "incoming"
	CallConnected = "connected"
	CallRejected  = "rejected"
*/
package models
