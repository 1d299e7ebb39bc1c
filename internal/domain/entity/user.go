// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in with an email and a password.
type User struct {
	ID             uuid.UUID // Opaque identifier assigned by the store.
	Email          string    // Unique login identifier.
	PasswordRecord string    // Salted password hash in the form "<salt-hex>.<hash-hex>".
	CreatedAt      time.Time // Timestamp of when the account was registered.
	UpdatedAt      time.Time // Timestamp of the last modification to the account.
}
