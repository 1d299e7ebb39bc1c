package auth

import (
	"bytes"
	"context"
	"encoding/hex"
	"regexp"
	"strings"
	"testing"

	"credential/config"
	"credential/internal/domain/entity"
	"credential/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/scrypt"
)

var recordPattern = regexp.MustCompile(`^[0-9a-f]{16}\.[0-9a-f]{64}$`)

// Lower cost for faster testing.
var testParams = config.ScryptConfig{N: 1024, R: 8, P: 1, KeyLen: 32}

func newTestHasher(t *testing.T) *scryptHasher {
	t.Helper()

	hasher, err := newScryptHasher(testParams, bytes.NewReader(bytes.Repeat([]byte{0x5a}, 64)))
	require.NoError(t, err)

	return hasher
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestScryptHasher_Hash(t *testing.T) {
	hasher, err := NewScryptHasher(nil)
	require.NoError(t, err)

	record, err := hasher.Hash(context.Background(), "123456")
	require.NoError(t, err)

	assert.NotEqual(t, "123456", record)
	assert.Regexp(t, recordPattern, record)

	parts := strings.Split(record, ".")
	require.Len(t, parts, 2)
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])
}

func TestScryptHasher_HashUsesHexSaltAsInput(t *testing.T) {
	salt := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	hasher, err := newScryptHasher(testParams, bytes.NewReader(salt))
	require.NoError(t, err)

	record, err := hasher.Hash(context.Background(), "secret")
	require.NoError(t, err)

	saltHex := hex.EncodeToString(salt)
	want, err := scrypt.Key([]byte("secret"), []byte(saltHex), testParams.N, testParams.R, testParams.P, testParams.KeyLen)
	require.NoError(t, err)

	assert.Equal(t, "0001020304050607."+hex.EncodeToString(want), record)
}

func TestScryptHasher_SaltsDiffer(t *testing.T) {
	hasher, err := newScryptHasher(testParams, bytes.NewReader([]byte("aaaaaaaabbbbbbbb")))
	require.NoError(t, err)

	first, err := hasher.Hash(context.Background(), "same-password")
	require.NoError(t, err)
	second, err := hasher.Hash(context.Background(), "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestScryptHasher_Verify(t *testing.T) {
	hasher := newTestHasher(t)
	ctx := context.Background()

	record, err := hasher.Hash(ctx, "StrongPass123!")
	require.NoError(t, err)

	ok, err := hasher.Verify(ctx, "StrongPass123!", record)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify(ctx, "WrongPassword123!", record)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = hasher.Verify(ctx, "", record)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScryptHasher_VerifyHonoursStoredKeyLength(t *testing.T) {
	short, err := newScryptHasher(config.ScryptConfig{N: 1024, R: 8, P: 1, KeyLen: 16}, bytes.NewReader(make([]byte, 8)))
	require.NoError(t, err)

	record, err := short.Hash(context.Background(), "pw")
	require.NoError(t, err)

	ok, err := newTestHasher(t).Verify(context.Background(), "pw", record)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScryptHasher_VerifyMalformedRecord(t *testing.T) {
	hasher := newTestHasher(t)

	_, err := hasher.Verify(context.Background(), "pw", "invalid_hash")
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrMalformedPasswordRecord))
}

func TestScryptHasher_SaltFailure(t *testing.T) {
	hasher, err := newScryptHasher(testParams, failingReader{})
	require.NoError(t, err)

	_, err = hasher.Hash(context.Background(), "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
}

func TestScryptHasher_CanceledContext(t *testing.T) {
	hasher := newTestHasher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hasher.Hash(ctx, "pw")
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = hasher.Verify(ctx, "pw", "0011223344556677.aabb")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewScryptHasher_InvalidParams(t *testing.T) {
	testCases := []struct {
		name   string
		params config.ScryptConfig
	}{
		{"N not power of two", config.ScryptConfig{N: 1000, R: 8, P: 1, KeyLen: 32}},
		{"N too small", config.ScryptConfig{N: 1, R: 8, P: 1, KeyLen: 32}},
		{"zero r", config.ScryptConfig{N: 1024, R: 0, P: 1, KeyLen: 32}},
		{"zero key length", config.ScryptConfig{N: 1024, R: 8, P: 1, KeyLen: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Auth: &config.AuthConfig{Scrypt: &tc.params}}
			_, err := NewScryptHasher(cfg)
			assert.Error(t, err)
		})
	}
}
