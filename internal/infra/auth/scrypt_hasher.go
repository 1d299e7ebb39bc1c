// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"io"

	"credential/config"
	"credential/internal/domain/entity"
	"credential/internal/domain/service"
	"credential/internal/errors"

	"golang.org/x/crypto/scrypt"
)

// saltBytes is the number of random bytes behind the 16 hex character salt.
const saltBytes = 8

// scryptHasher is a concrete implementation of the PasswordHasher interface using scrypt.
type scryptHasher struct {
	n      int
	r      int
	p      int
	keyLen int
	rand   io.Reader
}

// derivation carries the result of a key derivation back from its goroutine.
type derivation struct {
	key []byte
	err error
}

// NewScryptHasher is the constructor for scryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewScryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	params := config.ScryptConfig{
		N:      config.DefaultScryptN,
		R:      config.DefaultScryptR,
		P:      config.DefaultScryptP,
		KeyLen: config.DefaultScryptKeyLen,
	}
	if cfg != nil && cfg.Auth != nil && cfg.Auth.Scrypt != nil {
		params = *cfg.Auth.Scrypt
	}

	return newScryptHasher(params, rand.Reader)
}

func newScryptHasher(params config.ScryptConfig, random io.Reader) (*scryptHasher, error) {
	if params.N <= 1 || params.N&(params.N-1) != 0 {
		return nil, errors.Errorf("scrypt N must be a power of two greater than 1, got %d", params.N)
	}
	if params.R <= 0 || params.P <= 0 || uint64(params.R)*uint64(params.P) >= 1<<30 {
		return nil, errors.Errorf("scrypt parameters r=%d p=%d are out of range", params.R, params.P)
	}
	if params.KeyLen <= 0 {
		return nil, errors.Errorf("scrypt key length must be positive, got %d", params.KeyLen)
	}

	return &scryptHasher{
		n:      params.N,
		r:      params.R,
		p:      params.P,
		keyLen: params.KeyLen,
		rand:   random,
	}, nil
}

// Hash generates a random salt and derives the password key with scrypt.
// The hex salt text, not the raw salt bytes, is the scrypt salt input.
func (h *scryptHasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}
	saltHex := hex.EncodeToString(salt)

	key, err := h.derive(ctx, password, saltHex, h.keyLen)
	if err != nil {
		return "", err
	}

	return entity.NewPasswordRecord(saltHex, hex.EncodeToString(key)), nil
}

// Verify re-derives the key with the stored salt and compares the hex encodings.
// The stored hash length decides the derived key length, so records issued with
// another key length stay verifiable.
func (h *scryptHasher) Verify(ctx context.Context, password, record string) (bool, error) {
	saltHex, hashHex, err := entity.ParsePasswordRecord(record)
	if err != nil {
		return false, err
	}

	key, err := h.derive(ctx, password, saltHex, len(hashHex)/2)
	if err != nil {
		return false, err
	}

	candidate := hex.EncodeToString(key)

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hashHex)) == 1, nil
}

// derive runs scrypt on its own goroutine and waits for it or for ctx.
// An abandoned derivation finishes in the background and its result is dropped.
func (h *scryptHasher) derive(ctx context.Context, password, saltHex string, keyLen int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	done := make(chan derivation, 1)
	go func() {
		key, err := scrypt.Key([]byte(password), []byte(saltHex), h.n, h.r, h.p, keyLen)
		done <- derivation{key: key, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, errors.Wrap(res.err, "scrypt key derivation failed")
		}

		return res.key, nil
	}
}
