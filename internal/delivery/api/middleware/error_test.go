package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"accounts/internal/delivery/api/response"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError(err, c)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestErrorMiddleware_ClientErrorKeepsDetails(t *testing.T) {
	rec, body := handleError(t, errors.WithStack(domainerrors.ErrSlugUnavailable.WithDetails("my-team")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "my-team", body.Error.Details)
}

func TestErrorMiddleware_ServerErrorHidesDetails(t *testing.T) {
	err := errors.WithStack(domainerrors.ErrTransactionFailed.WithDetails("commit: driver: bad connection"))

	rec, body := handleError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "TRANSACTION_FAILED", body.Error.Code)
	assert.Nil(t, body.Error.Details)
	assert.NotContains(t, rec.Body.String(), "bad connection")
}

func TestErrorMiddleware_UnknownErrorIsInternal(t *testing.T) {
	rec, body := handleError(t, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
}
