// Package schema defines the user data structures shared across the directory.
package schema

// UserFields is the editable part of a user, as submitted through the create
// and update forms. Age is nil when no age was given.
type UserFields struct {
	FirstName string `json:"first_name" yaml:"firstName"`
	LastName  string `json:"last_name" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Age       *int   `json:"age,omitempty" yaml:"age,omitempty"`
	Bio       string `json:"bio,omitempty" yaml:"bio,omitempty"`
}

// UserRecord is a stored user. ID is assigned by the store and never reused.
type UserRecord struct {
	ID int `json:"id"`
	UserFields
}
