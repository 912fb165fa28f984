// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package questions is the data-access layer for study questions.

Service wraps a Store (Typesense or SQL) with input validation and uniform
error reporting:

	svc := questions.NewService(store, questions.DefaultPerPage)
	results, err := svc.Search(ctx, models.SubjectSystems, "formula")

A blank query returns an empty slice without a backend call. New questions
need a non-blank question and answer (see CanSubmit). Every backend failure
is reported as ErrRequestFailed.
*/
package questions
