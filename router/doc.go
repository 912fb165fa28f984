// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Ask server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, registry, cfg)

# Endpoints

Health (pings the question backend):

	GET /health

Questions:

	GET    /subjects                 - Subject list and default
	GET    /questions?subject=&q=    - Search, with highlight segments
	POST   /questions                - Add (X-Admin-Key if configured)
	DELETE /questions/{subject}/{id} - Delete (X-Admin-Key if configured)

Decoy call overlay:

	POST /decoy/sessions             - New session with an idle call
	GET  /decoy/sessions/{id}        - Current call snapshot
	POST /decoy/sessions/{id}/tap    - Tap the hidden trigger
	POST /decoy/sessions/{id}/accept - Answer
	POST /decoy/sessions/{id}/reject - Decline or hang up

HTML page:

	GET  /    - Search page
	POST /add - Add form, redirects back with a flash message

The session snapshot endpoint is polled once a second by the page while
the overlay is up, so it is not wrapped in request logging.
*/
package router
