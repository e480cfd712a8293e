package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDFromHeader(t *testing.T) {
	assert.Equal(t, "abc-123_x.y", RequestIDFromHeader("abc-123_x.y"))

	for _, bad := range []string{"", "has space", "line\nbreak", strings.Repeat("a", 65)} {
		got := RequestIDFromHeader(bad)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "input %q", bad)
	}
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
	assert.Equal(t, "req-1", GetRequestIDFromContext(WithRequestID(context.Background(), "req-1")))
}

func TestSetClaimsTagsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithLogger(req.Context(), base))
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	userID := uuid.New()
	SetClaims(c, &service.Claims{UserID: userID})

	got, ok := GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	GetLoggerOrDefault(c.Request().Context(), nil).Info("hello")
	assert.Contains(t, buf.String(), "user_id="+userID.String())
}
