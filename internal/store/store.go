// Package store holds the in-memory user directory.
package store

import (
	"errors"

	"github.com/celerix-dev/celerix-users/pkg/schema"
)

// ErrUserNotFound is returned when a requested user id is not live.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the contract the HTTP handlers and the seeder work against.
type UserStore interface {
	// List returns every user in insertion order.
	List() []schema.UserRecord
	// Get looks up a user by id. It returns ErrUserNotFound when absent.
	Get(id int) (schema.UserRecord, error)
	// Add stores a new user and returns its assigned id.
	Add(fields schema.UserFields) int
	// Update replaces all fields of an existing user. Unknown ids are ignored.
	Update(id int, fields schema.UserFields)
	// Delete removes a user. Unknown ids are ignored.
	Delete(id int)
	// SearchByEmail returns users whose email matches, ignoring case.
	SearchByEmail(email string) []schema.UserRecord
	// Count returns the number of live users.
	Count() int
}
