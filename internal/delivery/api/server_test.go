package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"accounts/config"
	apimiddleware "accounts/internal/delivery/api/middleware"
	"accounts/internal/delivery/api/router"
	"accounts/internal/delivery/api/router/handler"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/cache/local"
	"accounts/internal/infra/metrics"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/infra/pubsub"
	"accounts/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
		Total     *int64 `json:"total"`
	} `json:"meta"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			PasswordAlgorithm:   config.PasswordAlgorithmBcrypt,
			BcryptCost:          4,
			AdminEmailPromotion: true,
			AccessTokenTTL:      time.Minute,
			RefreshTokenTTL:     time.Hour,
		},
		PasswordPolicy: &config.PasswordPolicyConfig{MinLength: 6, MaxLength: 72},
		Slug:           &config.SlugConfig{MaxAttempts: 100},
		Metrics:        &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.Env.ServiceName = "accounts"
	cfg.Env.Version = "1.2.3"
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	publisher := pubsub.NewNoopPublisher(logger)
	m := metrics.New()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	denylist := local.NewTokenDenylist()

	accounts := impl.NewAccountService(store, store.UserRepo(), auth.NewBcryptHasherWithCost(4), publisher, m, cfg, logger)
	roles := impl.NewRoleService(store, store.RoleRepo(), impl.NewSlugAssigner(cfg.Slug.MaxAttempts, m), publisher, logger)
	sessions := impl.NewSessionService(impl.SessionDependencies{
		Accounts:     accounts,
		TxManager:    store,
		UserRepo:     store.UserRepo(),
		TokenService: tokens,
		Denylist:     denylist,
		Throttle:     local.NewLoginThrottle(5, time.Minute),
		Metrics:      m,
		Publisher:    publisher,
		Logger:       logger,
	})

	return newEcho(cfg, logger, router.RouterParams{
		AccessHandler:  handler.NewAccessHandler(accounts, sessions, false),
		UserHandler:    handler.NewUserHandler(accounts, sessions),
		RoleHandler:    handler.NewRoleHandler(roles),
		SystemHandler:  handler.NewSystemHandler(cfg.Env.ServiceName, cfg.Env.Version),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokens, denylist, logger),
		Config:         cfg,
		Metrics:        m,
	})
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func signupAndLogin(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/access/signup", "", `{"email":"`+email+`","name":"Test","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/access/login", "", `{"email":"`+email+`","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tokens handler.TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tokens))

	return tokens.AccessToken
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, handler.HealthResponse{Status: "online", App: "accounts", Version: "1.2.3"}, health)

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/health/liveness", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_SignupAndLogin(t *testing.T) {
	e := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/access/signup", "", `{"email":"a@x.com","name":"A","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hashed_password")
	assert.NotEmpty(t, env.Meta.RequestID)

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/access/signup", "", `{"email":"a@x.com","name":"A","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_ALREADY_REGISTERED", env.Error.Code)

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/access/login", "", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tokens handler.TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "a@x.com", tokens.User.Email)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, apimiddleware.TokenCookieName, cookies[0].Name)
	assert.Equal(t, tokens.AccessToken, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/access/login", "", `{"email":"a@x.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestServer_LoginWithPasswordForm(t *testing.T) {
	e := newTestServer(t)
	signupAndLogin(t, e, "form@x.com")

	form := url.Values{"username": {"form@x.com"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/access/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestServer_ValidationErrors(t *testing.T) {
	e := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/access/signup", "", `{"email":"not-an-email","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.NotNil(t, env.Error.Details)

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/access/signup", "", `{"email":"b@x.com","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ProfileAndLogout(t *testing.T) {
	e := newTestServer(t)
	token := signupAndLogin(t, e, "a@x.com")

	rec, _ := doJSON(t, e, http.MethodGet, "/api/v1/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := doJSON(t, e, http.MethodGet, "/api/v1/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "a@x.com", me.Email)
	assert.True(t, me.HasPassword)

	// The cookie alone authenticates too.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: apimiddleware.TokenCookieName, Value: token})
	cookieRec := httptest.NewRecorder()
	e.ServeHTTP(cookieRec, req)
	assert.Equal(t, http.StatusOK, cookieRec.Code)

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/access/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", env.Error.Code)
}

func TestServer_InactiveAccountIsForbidden(t *testing.T) {
	e := newTestServer(t)
	adminToken := signupAndLogin(t, e, "admin@x.com")
	signupAndLogin(t, e, "b@x.com")

	rec, env := doJSON(t, e, http.MethodGet, "/api/v1/users", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 2)
	require.NotNil(t, env.Meta.Total)
	assert.EqualValues(t, 2, *env.Meta.Total)

	var target handler.UserResponse
	for _, u := range users {
		if u.Email == "b@x.com" {
			target = u
		}
	}
	rec, _ = doJSON(t, e, http.MethodPatch, "/api/v1/users/"+target.ID.String(), adminToken, `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/access/login", "", `{"email":"b@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCOUNT_INACTIVE", env.Error.Code)
}

func TestServer_SuperuserRoutes(t *testing.T) {
	e := newTestServer(t)
	userToken := signupAndLogin(t, e, "a@x.com")
	adminToken := signupAndLogin(t, e, "admin@x.com")

	rec, env := doJSON(t, e, http.MethodGet, "/api/v1/users", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
	assert.Nil(t, env.Error.Details)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/users/count", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var count handler.CountResponse
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.EqualValues(t, 2, count.Count)

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/roles", adminToken, `{"name":"My Team"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var role handler.RoleResponse
	require.NoError(t, json.Unmarshal(env.Data, &role))
	assert.Equal(t, "my-team", role.Slug)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/me", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))

	rec, env = doJSON(t, e, http.MethodPut, "/api/v1/users/"+me.ID.String()+"/roles/"+role.ID.String(), adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var assigned handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &assigned))
	require.Len(t, assigned.Roles, 1)
	assert.Equal(t, "my-team", assigned.Roles[0].RoleSlug)

	rec, _ = doJSON(t, e, http.MethodDelete, "/api/v1/users/"+me.ID.String()+"/roles/"+role.ID.String(), adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/users/not-a-uuid", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	e := newTestServer(t)
	doJSON(t, e, http.MethodGet, "/api/v1/health", "", "")

	rec, _ := doJSON(t, e, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/health"`)
}
