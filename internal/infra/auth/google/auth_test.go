package google

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"accounts/config"
	"accounts/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestService(validate validateFunc) *AuthServiceImpl {
	cfg := &config.Config{GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "test_client_id"}}
	svc := NewAuthService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).(*AuthServiceImpl)
	svc.validate = validate

	return svc
}

func googlePayload(claims map[string]any) *idtoken.Payload {
	return &idtoken.Payload{
		Issuer:   "https://accounts.google.com",
		Audience: "test_client_id",
		Subject:  "google-sub-123",
		Claims:   claims,
	}
}

func TestAuthService_VerifyIDToken(t *testing.T) {
	var gotAudience string
	svc := newTestService(func(_ context.Context, _, audience string) (*idtoken.Payload, error) {
		gotAudience = audience

		return googlePayload(map[string]any{
			"email":          "jane@example.com",
			"email_verified": true,
			"name":           "Jane",
		}), nil
	})

	user, err := svc.VerifyIDToken(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "test_client_id", gotAudience)
	assert.Equal(t, "google-sub-123", user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, entity.ProviderGoogle, user.Provider)
	assert.True(t, user.EmailVerified)
}

func TestAuthService_VerifyIDToken_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload *idtoken.Payload
		err     error
	}{
		{name: "signature invalid", err: errors.New("idtoken: invalid token")},
		{name: "unverified email", payload: googlePayload(map[string]any{"email": "a@b.c", "email_verified": false})},
		{name: "missing email", payload: googlePayload(map[string]any{"email_verified": true})},
		{
			name: "foreign issuer",
			payload: &idtoken.Payload{
				Issuer:  "https://evil.example.com",
				Subject: "x",
				Claims:  map[string]any{"email": "a@b.c", "email_verified": true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(func(context.Context, string, string) (*idtoken.Payload, error) {
				return tt.payload, tt.err
			})

			user, err := svc.VerifyIDToken(context.Background(), "token")
			assert.Error(t, err)
			assert.Nil(t, user)
			assert.Contains(t, err.Error(), "token verification failed")
		})
	}
}

func TestAuthService_NotConfigured(t *testing.T) {
	svc := NewAuthService(&config.Config{}, slog.Default())

	_, err := svc.VerifyIDToken(context.Background(), "token")
	assert.Error(t, err)
	assert.Equal(t, entity.ProviderGoogle, svc.GetProvider())
}
