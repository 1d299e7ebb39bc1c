// Package memory contains an in-process implementation of the persistence layer.
package memory

import (
	"context"
	"sync"
	"time"

	"credential/internal/domain/entity"
	domainerrors "credential/internal/domain/errors"
	"credential/internal/domain/repository"

	"github.com/google/uuid"
)

// userRepository keeps users in a map keyed by email.
// Create checks and inserts under one lock, so the email stays unique under concurrent sign ups.
type userRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.User
	now     func() time.Time
}

// NewUserRepository returns an empty in-memory repository.UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byEmail: make(map[string]*entity.User),
		now:     time.Now,
	}
}

// Find returns a copy of the user registered under email, if any.
func (repo *userRepository) Find(ctx context.Context, email string) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.byEmail[email]
	if !ok {
		return []*entity.User{}, nil
	}

	found := *user

	return []*entity.User{&found}, nil
}

// Create stores a new user and returns a copy of it.
func (repo *userRepository) Create(ctx context.Context, email, passwordRecord string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[email]; exists {
		return nil, domainerrors.ErrDuplicateUser.WrapMessage("email already exists")
	}

	now := repo.now().UTC()
	user := &entity.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordRecord: passwordRecord,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	repo.byEmail[email] = user

	created := *user

	return &created, nil
}
