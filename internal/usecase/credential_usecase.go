// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"credential/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new user.
type SignUpInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// SignInInput defines the data required for a user to sign in.
type SignInInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// UserOutput returns the registered or authenticated user.
type UserOutput struct {
	User *entity.User
}

// CredentialUsecase defines the password credential operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CredentialUsecase interface {
	// SignUp registers a new user with a salted, hashed password.
	SignUp(ctx context.Context, input *SignUpInput) (*UserOutput, error)

	// SignIn verifies the password of a registered user.
	SignIn(ctx context.Context, input *SignInInput) (*UserOutput, error)
}
