// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Ask server.

# Handler Types

  - QuestionHandler: JSON search, add, delete and the subject list
  - DecoyHandler: Fake call sessions (tap, accept, reject)
  - PageHandler: The HTML search page and its add form

Handlers are created via constructor functions:

	questionHandler := handlers.NewQuestionHandler(svc)
	decoyHandler := handlers.NewDecoyHandler(registry)
	pageHandler := handlers.NewPageHandler(svc, cfg)

# Questions

	GET    /questions?subject=&q= → Search
	POST   /questions             → Create
	DELETE /questions/{subject}/{id} → Delete

The subject defaults to systems. An empty query returns an empty list
without touching the backend. Backend failures are 502 with the message
"Failed to fetch questions" or "Failed to add question".

# Decoy Sessions

Each browser creates a session and forwards taps on the page title:

	POST /decoy/sessions/{id}/tap → Tap (fourth quick tap rings)
	POST /decoy/sessions/{id}/accept → Accept
	POST /decoy/sessions/{id}/reject → Reject

Accepting or rejecting a call that is not ringing is 409. Unknown or
expired sessions are 404.

# Page

The page is rendered from templates/index.html with html/template.
POST /add redirects back to the page with a flash code in the query.
*/
package handlers
