package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	domainerrors "credential/internal/domain/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testRecord = "0011223344556677.00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_Find(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	firstID, secondID := uuid.New(), uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY created_at`)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_record", "created_at", "updated_at"}).
			AddRow(firstID.String(), "a@x.com", testRecord, created, created).
			AddRow(secondID.String(), "a@x.com", testRecord, created.Add(time.Hour), created.Add(time.Hour)))

	users, err := repo.Find(context.Background(), "a@x.com")

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, firstID, users[0].ID)
	assert.Equal(t, secondID, users[1].ID)
	assert.Equal(t, testRecord, users[0].PasswordRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Find_NoMatchIsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_record", "created_at", "updated_at"}))

	users, err := repo.Find(context.Background(), "ghost@x.com")

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Find_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs("a@x.com").
		WillReturnError(dbErr)

	users, err := repo.Find(context.Background(), "a@x.com")

	assert.Nil(t, users)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.True(t, errors.Is(err, dbErr))
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WithArgs("a@x.com", testRecord, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	user, err := repo.Create(context.Background(), "a@x.com", testRecord)

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, testRecord, user.PasswordRecord)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, Message: "duplicate key value violates unique constraint"})

	user, err := repo.Create(context.Background(), "a@x.com", testRecord)

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateUser))
}

func TestUserRepository_Create_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New("disk full"))

	_, err := repo.Create(context.Background(), "a@x.com", testRecord)

	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrDuplicateUser))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(&pgconn.PgError{Code: pgUniqueViolation}, "insert")))
	assert.False(t, isUniqueConstraintViolation(&pgconn.PgError{Code: pgNotNullViolation}))
	assert.False(t, isUniqueConstraintViolation(errors.New("boom")))
}
