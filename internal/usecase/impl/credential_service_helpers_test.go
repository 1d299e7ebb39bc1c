package impl

import (
	"io"
	"log/slog"

	"credential/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConfig keeps scrypt cheap so end-to-end tests stay fast.
func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			Scrypt: &config.ScryptConfig{N: 1024, R: 8, P: 1, KeyLen: 32},
		},
	}
}
