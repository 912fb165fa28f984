// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-ask/decoy"
	"github.com/danielhkuo/quickly-ask/middleware"
	"github.com/danielhkuo/quickly-ask/models"
)

type DecoyHandler struct {
	registry *decoy.Registry
}

func NewDecoyHandler(registry *decoy.Registry) *DecoyHandler {
	return &DecoyHandler{registry: registry}
}

// call looks up the session named in the path, writing 404 if it is gone
func (h *DecoyHandler) call(w http.ResponseWriter, r *http.Request) (*decoy.Call, bool) {
	call, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return call, true
}

// CreateSession handles POST /decoy/sessions
func (h *DecoyHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, call := h.registry.Create()
	slog.Info("decoy session created", "session_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: id,
		Call:      call.Snapshot(),
	})
}

// Get handles GET /decoy/sessions/{id}
func (h *DecoyHandler) Get(w http.ResponseWriter, r *http.Request) {
	call, ok := h.call(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, call.Snapshot())
}

// Tap handles POST /decoy/sessions/{id}/tap
func (h *DecoyHandler) Tap(w http.ResponseWriter, r *http.Request) {
	call, ok := h.call(w, r)
	if !ok {
		return
	}

	triggered, snap := call.Tap()
	if triggered {
		slog.Info("decoy call triggered", "session_id", r.PathValue("id"))
	}

	middleware.JSONResponse(w, http.StatusOK, models.TapResponse{
		Triggered: triggered,
		Call:      snap,
	})
}

// Accept handles POST /decoy/sessions/{id}/accept
func (h *DecoyHandler) Accept(w http.ResponseWriter, r *http.Request) {
	call, ok := h.call(w, r)
	if !ok {
		return
	}

	snap, err := call.Accept()
	writeTransition(w, snap, err)
}

// Reject handles POST /decoy/sessions/{id}/reject
func (h *DecoyHandler) Reject(w http.ResponseWriter, r *http.Request) {
	call, ok := h.call(w, r)
	if !ok {
		return
	}

	snap, err := call.Reject()
	writeTransition(w, snap, err)
}

func writeTransition(w http.ResponseWriter, snap models.CallSnapshot, err error) {
	if errors.Is(err, decoy.ErrInvalidTransition) {
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}
