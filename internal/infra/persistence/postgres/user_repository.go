// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"credential/internal/domain/entity"
	domainerrors "credential/internal/domain/errors"
	"credential/internal/domain/repository"
	"credential/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Find returns every user registered under the email, oldest first.
// No match is an empty slice, not an error.
func (repo *userRepository) Find(ctx context.Context, email string) ([]*entity.User, error) {
	var rows []*model.UserModel

	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by email")
	}

	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUserDomain(row))
	}

	return users, nil
}

// Create inserts a user and returns it with the database generated id and timestamps.
func (repo *userRepository) Create(ctx context.Context, email, passwordRecord string) (*entity.User, error) {
	userM := &model.UserModel{
		Email:          email,
		PasswordRecord: passwordRecord,
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrDuplicateUser.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return nil, domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return toUserDomain(userM), nil
}

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		PasswordRecord: data.PasswordRecord,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
