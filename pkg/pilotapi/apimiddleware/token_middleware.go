package apimiddleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const DefaultKeyname = "pilotd_token"

type ValidTokenFN func(string) bool

type TokenConfig struct {
	Skipper    middleware.Skipper
	Keyname    string
	ValidToken ValidTokenFN
}

// MatchToken accepts exactly expected.
func MatchToken(expected string) ValidTokenFN {
	return func(token string) bool {
		return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
	}
}

// TokenAuth rejects requests that don't carry a valid token in the
// Keyname header or query parameter.
func TokenAuth(config TokenConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Keyname == "" {
		config.Keyname = DefaultKeyname
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			value, err := getTokenFromRequest(config.Keyname, c)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			if !config.ValidToken(value) {
				return echo.ErrUnauthorized
			}

			return next(c)
		}
	}
}

func getTokenFromRequest(key string, c echo.Context) (string, error) {
	if value := c.Request().Header.Get(key); value != "" {
		return value, nil
	}

	if value := c.QueryParam(key); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("no token '%s' as query param or header", key)
}
