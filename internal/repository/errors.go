// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting database error strings themselves. The handler package maps
// each sentinel to an HTTP status code in a single table.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique email
// constraint. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a lookup or update targets a user id
// (or email) with no matching row.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidRefresh is returned when a refresh token is absent from the
// store or past its expiry. An expired row is indistinguishable from a
// missing one on purpose.
var ErrInvalidRefresh = errors.New("invalid refresh token")
