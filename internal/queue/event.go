// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published when a registration succeeds.  It
// contains enough information for downstream consumers (mailers, CRM sync,
// analytics) to act without querying the primary database.  The password
// hash is deliberately absent.
type UserRegisteredEvent struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	RegisteredAt string `json:"registered_at"`
}

// UserDeletedEvent is published when an admin removes a user so that
// downstream systems can drop their own references.
type UserDeletedEvent struct {
	UserID    string `json:"user_id"`
	DeletedAt string `json:"deleted_at"`
}
