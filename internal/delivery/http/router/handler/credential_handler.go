// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"credential/internal/delivery/http/response"
	"credential/internal/domain/entity"
	"credential/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CredentialHandlerParams holds dependencies for CredentialHandler, injected by Fx.
type CredentialHandlerParams struct {
	fx.In

	CredentialUC usecase.CredentialUsecase
	Logger       *slog.Logger
}

// CredentialHandler serves sign up and sign in.
type CredentialHandler struct {
	credentialUC usecase.CredentialUsecase
	logger       *slog.Logger
}

// NewCredentialHandler is the constructor for CredentialHandler
func NewCredentialHandler(params CredentialHandlerParams) *CredentialHandler {
	return &CredentialHandler{
		credentialUC: params.CredentialUC,
		logger:       params.Logger,
	}
}

// CredentialsRequest represents the request body of sign up and sign in
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user. The password record is never part of it.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// SignUp registers a new user.
func (h *CredentialHandler) SignUp(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign up input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Invalid sign up input", err.Error())
	}

	output, err := h.credentialUC.SignUp(c.Request().Context(), &usecase.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User))
}

// SignIn checks the credentials of an existing user.
func (h *CredentialHandler) SignIn(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign in input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Invalid sign in input", err.Error())
	}

	output, err := h.credentialUC.SignIn(c.Request().Context(), &usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(output.User))
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
