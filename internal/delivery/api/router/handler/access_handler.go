package handler

import (
	"net/http"
	"time"

	apimiddleware "accounts/internal/delivery/api/middleware"
	"accounts/internal/delivery/api/response"
	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
)

const tokenTypeBearer = "bearer"

// SignupRequest creates an account. Password length is checked against the configured policy.
type SignupRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Name     string `json:"name" form:"name" validate:"max=255"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRequest accepts JSON or an OAuth2-style password form, where the email is sent as "username".
type LoginRequest struct {
	Email    string `json:"email" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" form:"id_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// AccessHandler serves sign-up, sign-in and token endpoints.
type AccessHandler struct {
	accounts     usecase.AccountUsecase
	sessions     usecase.SessionUsecase
	cookieSecure bool
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(accounts usecase.AccountUsecase, sessions usecase.SessionUsecase, cookieSecure bool) *AccessHandler {
	return &AccessHandler{accounts: accounts, sessions: sessions, cookieSecure: cookieSecure}
}

// Signup registers a new account.
func (h *AccessHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user))
}

// Login issues tokens and sets the token cookie.
func (h *AccessHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.respondWithSession(c, session)
}

// LoginWithGoogle signs in with a Google ID token.
func (h *AccessHandler) LoginWithGoogle(c echo.Context) error {
	var req GoogleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.sessions.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}

	return h.respondWithSession(c, session)
}

// Refresh exchanges a refresh token for a new access token.
func (h *AccessHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.sessions.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, out.AccessToken, out.ExpiresAt)

	return response.Success(c, http.StatusOK, AccessTokenResponse{
		AccessToken: out.AccessToken,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   out.ExpiresAt,
	})
}

// Logout revokes the presented tokens and clears the cookie.
func (h *AccessHandler) Logout(c echo.Context) error {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("malformed request body"))
	}

	if err := h.sessions.Logout(c.Request().Context(), claims, req.RefreshToken); err != nil {
		return err
	}

	h.setTokenCookie(c, "", time.Unix(0, 0))

	return response.Success(c, http.StatusOK, MessageResponse{Message: "logged out"})
}

func (h *AccessHandler) respondWithSession(c echo.Context, session *usecase.Session) error {
	h.setTokenCookie(c, session.Tokens.AccessToken, session.Tokens.AccessExpiresAt)

	return response.Success(c, http.StatusCreated, TokenResponse{
		AccessToken:      session.Tokens.AccessToken,
		RefreshToken:     session.Tokens.RefreshToken,
		TokenType:        tokenTypeBearer,
		AccessExpiresAt:  session.Tokens.AccessExpiresAt,
		RefreshExpiresAt: session.Tokens.RefreshExpiresAt,
		User:             toUserResponse(session.User),
	})
}

// setTokenCookie writes the access token cookie; an empty value expires it.
func (h *AccessHandler) setTokenCookie(c echo.Context, value string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     apimiddleware.TokenCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}

	c.SetCookie(cookie)
}
