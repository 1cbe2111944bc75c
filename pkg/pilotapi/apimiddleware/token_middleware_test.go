package apimiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchToken(t *testing.T) {
	match := MatchToken("secret")
	assert.True(t, match("secret"))
	assert.False(t, match("secret2"))
	assert.False(t, match(""))
}

func TestTokenAuthSkipper(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := TokenAuth(TokenConfig{
		Skipper:    func(c echo.Context) bool { return c.Request().URL.Path == "/health" },
		ValidToken: MatchToken("secret"),
	})

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestTokenAuthRejects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/pilots?pilotd_token=wrong", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	mw := TokenAuth(TokenConfig{ValidToken: MatchToken("secret")})
	err := mw(func(c echo.Context) error { return nil })(c)
	assert.Equal(t, echo.ErrUnauthorized, err)
}
