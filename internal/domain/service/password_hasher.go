// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying key-derivation function, keeping the domain pure.
type PasswordHasher interface {
	// Hash derives a salted password record from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Verify re-derives the key for password with the salt stored in record
	// and reports whether it matches the stored hash.
	Verify(ctx context.Context, password, record string) (bool, error)
}
