package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"swapskillz/internal/usecase"
	"swapskillz/pkg/errors"
)

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return errors.Unauthorized("Authorization header is required", nil)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return errors.Unauthorized("Invalid authorization format", nil)
		}

		return m.authenticate(c, parts[1], next)
	}
}

// AuthenticateQuery accepts the token as a ?token= parameter, for
// websocket upgrades where browsers cannot set headers.
func (m *AuthMiddleware) AuthenticateQuery(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return m.Authenticate(next)(c)
		}
		return m.authenticate(c, token, next)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, token string, next echo.HandlerFunc) error {
	principal, err := m.authUseCase.Authenticate(c.Request().Context(), token)
	if err != nil {
		return err
	}

	c.Set("uid", principal.User.ID)
	c.Set("role", principal.User.Role)
	c.Set("user", principal.User)
	c.Set("token", token)

	return next(c)
}

// Optional resolves the caller when a valid bearer token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return next(c)
		}

		principal, err := m.authUseCase.Authenticate(c.Request().Context(), parts[1])
		if err != nil {
			return next(c)
		}

		c.Set("uid", principal.User.ID)
		c.Set("role", principal.User.Role)
		c.Set("user", principal.User)
		return next(c)
	}
}
