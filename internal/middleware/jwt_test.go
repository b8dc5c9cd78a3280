package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/utils"
)

const testSecret = "middleware-test-secret"

func runJWTAuth(t *testing.T, mutate func(*http.Request)) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	err := JWTAuth(testSecret)(next)(c)
	require.NoError(t, err)
	return rec, called
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, called := runJWTAuth(t, func(*http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "downstream handler must not run")
}

func TestJWTAuthBearerHeader(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "uid-1", model.RoleUser, 5)
	require.NoError(t, err)

	rec, called := runJWTAuth(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestJWTAuthCookie(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "uid-1", model.RoleAdmin, 5)
	require.NoError(t, err)

	rec, called := runJWTAuth(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: tok.Token})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "uid-1", model.RoleUser, -1)
	require.NoError(t, err)

	rec, called := runJWTAuth(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestJWTAuthPopulatesContext(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "uid-42", model.RoleAdmin, 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = JWTAuth(testSecret)(func(c echo.Context) error {
		assert.Equal(t, "uid-42", c.Get("user_id"))
		assert.Equal(t, model.RoleAdmin, c.Get("role"))
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	cases := []struct {
		name string
		role interface{}
		want int
	}{
		{"admin allowed", model.RoleAdmin, http.StatusOK},
		{"user forbidden", model.RoleUser, http.StatusForbidden},
		{"missing role", nil, http.StatusForbidden},
		{"wrong type", 42, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			err := RequireRole(model.RoleAdmin)(next)(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
