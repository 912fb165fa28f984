// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the question write endpoints.

# Admin Key

The server has at most one admin key, set with ADMIN_KEY or -admin-key.
Clients send it in the X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), cfg.AdminKey)

Comparison is constant time. With no key configured every request passes,
which matches the original single-user deployment.

# Generating Keys

	key, err := auth.GenerateAdminKey()

Returns 24 random bytes, URL-safe base64 encoded without padding.
qactl admin-key prints one.
*/
package auth
