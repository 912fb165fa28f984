// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/danielhkuo/quickly-ask/auth"
	"github.com/danielhkuo/quickly-ask/cliparse"
	"github.com/danielhkuo/quickly-ask/highlight"
	"github.com/danielhkuo/quickly-ask/models"
	"github.com/danielhkuo/quickly-ask/questions"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Flash codes carried in the redirect after POST /add
const (
	flashAdded        = "added"
	flashFailed       = "failed"
	flashInvalid      = "invalid"
	flashUnauthorized = "unauthorized"
)

var flashMessages = map[string]struct {
	text  string
	isErr bool
}{
	flashAdded:        {"Question added successfully", false},
	flashFailed:       {"Failed to add question", true},
	flashInvalid:      {"Question and answer are required", true},
	flashUnauthorized: {"Invalid admin key", true},
}

type pageData struct {
	Subjects     []models.SubjectInfo
	Subject      models.Subject
	SubjectName  string
	Query        string
	Results      []models.SearchResult
	Error        string
	Flash        string
	FlashIsError bool
	NeedAdminKey bool
	Caller       string
}

// NoResults reports whether a real search came back empty
func (d pageData) NoResults() bool {
	return d.Query != "" && d.Error == "" && len(d.Results) == 0
}

type PageHandler struct {
	svc *questions.Service
	cfg cliparse.Config
}

func NewPageHandler(svc *questions.Service, cfg cliparse.Config) *PageHandler {
	return &PageHandler{svc: svc, cfg: cfg}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	// GET / also catches unknown paths
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	subject, ok := subjectParam(r.URL.Query().Get("subject"))
	if !ok {
		subject = models.DefaultSubject
	}
	query := r.URL.Query().Get("q")

	data := pageData{
		Subjects:     models.Subjects,
		Subject:      subject,
		SubjectName:  subject.Name(),
		Query:        query,
		NeedAdminKey: h.cfg.AdminKey != "",
		Caller:       h.cfg.CallerName,
	}
	if msg, ok := flashMessages[r.URL.Query().Get("flash")]; ok {
		data.Flash = msg.text
		data.FlashIsError = msg.isErr
	}

	status := http.StatusOK
	found, err := h.svc.Search(r.Context(), subject, query)
	if err != nil {
		data.Error = "Failed to fetch questions"
		status = http.StatusBadGateway
	}
	for _, q := range found {
		data.Results = append(data.Results, highlight.Result(q, query))
	}

	render(w, status, data)
}

// Add handles POST /add from the page form
func (h *PageHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	subject, ok := subjectParam(r.PostFormValue("subject"))
	if !ok {
		http.Error(w, "unknown subject", http.StatusBadRequest)
		return
	}

	flash := flashAdded
	if err := auth.ValidateAdminKey(r.PostFormValue("admin_key"), h.cfg.AdminKey); err != nil {
		flash = flashUnauthorized
	} else if _, err := h.svc.Add(r.Context(), subject, r.PostFormValue("question"), r.PostFormValue("answer")); err != nil {
		flash = flashFailed
		if errors.Is(err, questions.ErrInvalidQuestion) {
			flash = flashInvalid
		}
	}

	v := url.Values{}
	v.Set("subject", string(subject))
	v.Set("flash", flash)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

func render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
