package models

// Subject identifies one of the fixed study categories.
// Each subject is backed by its own remote collection.
type Subject string

const (
	SubjectCosts          Subject = "costs"
	SubjectZakat          Subject = "zakat"
	SubjectIssues         Subject = "issues"
	SubjectAdministrative Subject = "administrative"
	SubjectSystems        Subject = "systems"
)

// DefaultSubject is selected when the request doesn't name one
const DefaultSubject = SubjectSystems

type SubjectInfo struct {
	ID   Subject `json:"id"`
	Name string  `json:"name"`
}

// Subjects lists every subject in display order
var Subjects = []SubjectInfo{
	{ID: SubjectCosts, Name: "Costs"},
	{ID: SubjectZakat, Name: "Zakat"},
	{ID: SubjectIssues, Name: "Issues"},
	{ID: SubjectAdministrative, Name: "Administrative"},
	{ID: SubjectSystems, Name: "Systems"},
}

// ParseSubject accepts only the fixed subject ids
func ParseSubject(s string) (Subject, bool) {
	for _, info := range Subjects {
		if string(info.ID) == s {
			return info.ID, true
		}
	}
	return "", false
}

// Collection returns the name of the collection holding this subject's questions
func (s Subject) Collection() string {
	return string(s) + "_questions"
}

func (s Subject) Name() string {
	for _, info := range Subjects {
		if info.ID == s {
			return info.Name
		}
	}
	return string(s)
}

// Call states for the decoy overlay
type CallState string

const (
	CallIdle      CallState = "idle"
	CallIncoming  CallState = "incoming"
	CallConnected CallState = "connected"
	CallRejected  CallState = "rejected"
)

// Request types

type CreateQuestionRequest struct {
	Subject  string `json:"subject"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Response types

type SearchResponse struct {
	Subject Subject        `json:"subject"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

type SearchResult struct {
	Question
	QuestionParts []Segment `json:"question_parts"`
	AnswerParts   []Segment `json:"answer_parts"`
}

type SubjectsResponse struct {
	Subjects []SubjectInfo `json:"subjects"`
	Default  Subject       `json:"default"`
}

type CreateSessionResponse struct {
	SessionID string       `json:"session_id"`
	Call      CallSnapshot `json:"call"`
}

type TapResponse struct {
	Triggered bool         `json:"triggered"`
	Call      CallSnapshot `json:"call"`
}

// Domain types

type Question struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Subject  Subject `json:"subject"`
}

// Segment is one piece of a highlighted string
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// CallSnapshot is what the overlay renders at a point in time
type CallSnapshot struct {
	State   CallState `json:"state"`
	Visible bool      `json:"visible"`
	Caller  string    `json:"caller"`
	Elapsed int       `json:"elapsed_seconds"`
	Display string    `json:"display"`
	Pulse   bool      `json:"pulse"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
