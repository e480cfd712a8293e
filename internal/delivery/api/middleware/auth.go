package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/errors"

	"github.com/labstack/echo/v4"
)

// TokenCookieName is the cookie that carries the access token for browser clients.
const TokenCookieName = "token"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	denylist service.TokenDenylist
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, denylist service.TokenDenylist, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, denylist: denylist, logger: logger}
}

// Authenticate validates the access token from the Authorization header or,
// failing that, the token cookie. Revoked tokens are rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := extractToken(c.Request())
		if !ok {
			return errors.WithStack(domainerrors.ErrUnauthorized)
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString, service.TokenTypeAccess)
		if err != nil {
			return errors.WithStack(domainerrors.ErrTokenInvalid)
		}

		revoked, err := m.denylist.IsRevoked(c.Request().Context(), claims.TokenID)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Error("Failed to check token revocation", slog.Any("error", err))

			return errors.Wrap(err, "failed to check token revocation")
		}
		if revoked {
			return errors.WithStack(domainerrors.ErrTokenInvalid)
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}

// RequireRole checks the role claims. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := deliverycontext.GetClaims(c)
			if !ok {
				return errors.WithStack(domainerrors.ErrUnauthorized)
			}

			if !slices.Contains(claims.Roles, requiredRole) {
				return errors.WithStack(domainerrors.ErrForbidden.WithDetails("requires role " + requiredRole))
			}

			return next(c)
		}
	}
}

// RequireSuperuser restricts a route group to superusers.
func (m *AuthMiddleware) RequireSuperuser() echo.MiddlewareFunc {
	return m.RequireRole(entity.SuperuserRole)
}

func extractToken(r *http.Request) (string, bool) {
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)

		return token, found && token != ""
	}

	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}
