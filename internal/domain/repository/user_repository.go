// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"credential/internal/domain/entity"
)

// UserRepository is the user store the credential service depends on.
// Implementations that enforce email uniqueness report a collision with an error
// wrapping domain errors.ErrDuplicateUser.
type UserRepository interface {
	// Find returns every user registered under the email. An unknown email yields an empty slice.
	Find(ctx context.Context, email string) ([]*entity.User, error)

	// Create persists a new user with the given email and password record and returns it.
	Create(ctx context.Context, email, passwordRecord string) (*entity.User, error)
}
