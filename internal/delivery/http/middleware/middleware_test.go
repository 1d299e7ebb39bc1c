package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "credential/internal/delivery/context"
	"credential/internal/delivery/http/response"
	domainerrors "credential/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetRequestID(c, "req-1")

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(err, c)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestErrorMiddleware_AppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"duplicate user", domainerrors.ErrDuplicateUser.WrapMessage("sign up failed"), http.StatusBadRequest, "DUPLICATE_USER"},
		{"user not found", domainerrors.ErrUserNotFound.WrapMessage("sign in failed"), http.StatusNotFound, "USER_NOT_FOUND"},
		{"invalid credentials", domainerrors.ErrInvalidCredentials.WrapMessage("sign in failed"), http.StatusBadRequest, "INVALID_CREDENTIALS"},
		{"database failure", domainerrors.NewDatabaseExecuteError(errors.New("timeout"), "find"), http.StatusInternalServerError, "DATABASE_EXECUTE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveError(t, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, body.Error.Code)
			assert.Equal(t, "req-1", body.Meta.RequestID)
		})
	}
}

func TestErrorMiddleware_DatabaseErrorHidesDetails(t *testing.T) {
	_, body := serveError(t, domainerrors.NewDatabaseExecuteError(errors.New("pq: password=secret"), "failed to find users"))

	assert.Nil(t, body.Error.Details)
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec, body := serveError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
	assert.Equal(t, "method not allowed", body.Error.Message)
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	rec, body := serveError(t, errors.New("scrypt: memory exhausted"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "scrypt")
}

func TestRequestIDMiddleware_PropagatesHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	buf := &bytes.Buffer{}
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(buf, nil)))

	err := m.Process(func(c echo.Context) error {
		ctx := c.Request().Context()
		assert.Equal(t, "client-id", deliverycontext.RequestIDFromContext(ctx))
		deliverycontext.LoggerOrDefault(ctx, nil).Info("inside handler")

		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, "client-id", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "client-id", deliverycontext.GetRequestID(c))
	assert.Contains(t, buf.String(), "request_id=client-id")
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewRequestIDMiddleware(newDiscardLogger())
	require.NoError(t, m.Process(func(echo.Context) error { return nil })(c))

	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}
