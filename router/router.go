// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-ask/cliparse"
	"github.com/danielhkuo/quickly-ask/decoy"
	"github.com/danielhkuo/quickly-ask/handlers"
	"github.com/danielhkuo/quickly-ask/middleware"
	"github.com/danielhkuo/quickly-ask/questions"
)

func NewRouter(svc *questions.Service, registry *decoy.Registry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(svc)
	decoyHandler := handlers.NewDecoyHandler(registry)
	pageHandler := handlers.NewPageHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", questionHandler.Health)

	// Questions (writes need the admin key when one is configured)
	mux.HandleFunc("GET /subjects", middleware.WithLogging(questionHandler.Subjects))
	mux.HandleFunc("GET /questions", middleware.WithLogging(questionHandler.Search))
	mux.HandleFunc("POST /questions", middleware.WithLogging(
		middleware.RequireAdminKey(cfg.AdminKey, questionHandler.Create)))
	mux.HandleFunc("DELETE /questions/{subject}/{id}", middleware.WithLogging(
		middleware.RequireAdminKey(cfg.AdminKey, questionHandler.Delete)))

	// Decoy call overlay
	mux.HandleFunc("POST /decoy/sessions", middleware.WithLogging(decoyHandler.CreateSession))
	mux.HandleFunc("GET /decoy/sessions/{id}", decoyHandler.Get)
	mux.HandleFunc("POST /decoy/sessions/{id}/tap", middleware.WithLogging(decoyHandler.Tap))
	mux.HandleFunc("POST /decoy/sessions/{id}/accept", middleware.WithLogging(decoyHandler.Accept))
	mux.HandleFunc("POST /decoy/sessions/{id}/reject", middleware.WithLogging(decoyHandler.Reject))

	// HTML page
	mux.HandleFunc("GET /", middleware.WithLogging(pageHandler.Index))
	mux.HandleFunc("POST /add", middleware.WithLogging(pageHandler.Add))

	return mux
}
