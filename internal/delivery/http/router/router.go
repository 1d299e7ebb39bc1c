// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"credential/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CredentialHandler *handler.CredentialHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	credentialHandler *handler.CredentialHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		credentialHandler: params.CredentialHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.credentialHandler.SignUp)
		authGroup.POST("/signin", r.credentialHandler.SignIn)
	}
}
