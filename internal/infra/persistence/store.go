// Package persistence selects the user store configured under store.driver.
package persistence

import (
	"log/slog"

	"credential/config"
	"credential/internal/domain/repository"
	"credential/internal/errors"
	"credential/internal/infra/persistence/memory"
	"credential/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// StoreParams defines the dependencies of the user store.
type StoreParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserRepository builds the repository.UserRepository for the configured driver.
// The postgres driver registers its connection on the fx lifecycle.
func NewUserRepository(params StoreParams) (repository.UserRepository, error) {
	driver := config.StoreDriverMemory
	if params.Config.Store != nil && params.Config.Store.Driver != "" {
		driver = params.Config.Store.Driver
	}

	switch driver {
	case config.StoreDriverMemory:
		params.Logger.Info("Using in-memory user store")

		return memory.NewUserRepository(), nil
	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Using PostgreSQL user store")

		return postgres.NewUserRepository(db), nil
	default:
		return nil, errors.Errorf("unknown store driver %q", driver)
	}
}
