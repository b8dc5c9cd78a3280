package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-account-service/internal/config"
)

// mapStore is an in-memory cacheStore for exercising the middleware
// without a Redis server.
type mapStore struct {
	data map[string][]byte
}

func newMapStore() *mapStore { return &mapStore{data: map[string][]byte{}} }

func (s *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := s.data[key]
	if !ok {
		return nil, errors.New("missing key")
	}
	return b, nil
}

func (s *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.data[key] = value
	return nil
}

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		Prefix:       "test",
		MaxBodyBytes: 1 << 20,
	}
}

func runThroughCache(t *testing.T, mw echo.MiddlewareFunc, h echo.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/users")
	require.NoError(t, mw(h)(c))
	return rec
}

func TestCacheHitServesIdenticalResponse(t *testing.T) {
	store := newMapStore()
	mw := newCache(cacheTestConfig(), store)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		c.Response().Header().Set("X-Origin-Stamp", "stamp-1")
		return c.JSON(http.StatusOK, echo.Map{"users": []string{"a", "b"}})
	}

	miss := runThroughCache(t, mw, h, http.MethodGet, "/api/users?page=1")
	require.Equal(t, 1, calls)
	assert.Equal(t, "MISS", miss.Header().Get("X-Cache"))
	require.Len(t, store.data, 1)

	hit := runThroughCache(t, mw, h, http.MethodGet, "/api/users?page=1")
	assert.Equal(t, 1, calls, "handler must not run again on a hit")
	assert.Equal(t, "HIT", hit.Header().Get("X-Cache"))

	// The replayed response is indistinguishable from the original:
	// same status, same body bytes, same headers.
	assert.Equal(t, miss.Code, hit.Code)
	assert.Equal(t, miss.Body.Bytes(), hit.Body.Bytes())
	assert.Equal(t, miss.Header().Get(echo.HeaderContentType), hit.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "stamp-1", hit.Header().Get("X-Origin-Stamp"))
}

func TestCacheKeysIncludeQueryString(t *testing.T) {
	store := newMapStore()
	mw := newCache(cacheTestConfig(), store)

	h := func(c echo.Context) error {
		return c.String(http.StatusOK, "page "+c.QueryParam("page"))
	}

	one := runThroughCache(t, mw, h, http.MethodGet, "/api/users?page=1")
	two := runThroughCache(t, mw, h, http.MethodGet, "/api/users?page=2")
	assert.Equal(t, "page 1", one.Body.String())
	assert.Equal(t, "page 2", two.Body.String())
	assert.Len(t, store.data, 2)
}

func TestCacheSkipsNonCacheableMethod(t *testing.T) {
	store := newMapStore()
	mw := newCache(cacheTestConfig(), store)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "created")
	}

	runThroughCache(t, mw, h, http.MethodPost, "/api/users")
	runThroughCache(t, mw, h, http.MethodPost, "/api/users")
	assert.Equal(t, 2, calls)
	assert.Empty(t, store.data)
}

func TestCacheOnlyStores200Responses(t *testing.T) {
	store := newMapStore()
	mw := newCache(cacheTestConfig(), store)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	runThroughCache(t, mw, h, http.MethodGet, "/api/users")
	runThroughCache(t, mw, h, http.MethodGet, "/api/users")
	assert.Equal(t, 2, calls)
	assert.Empty(t, store.data)
}

func TestCacheSkipsOversizedBodies(t *testing.T) {
	cfg := cacheTestConfig()
	cfg.MaxBodyBytes = 8
	store := newMapStore()
	mw := newCache(cfg, store)

	h := func(c echo.Context) error {
		return c.String(http.StatusOK, strings.Repeat("x", 64))
	}

	rec := runThroughCache(t, mw, h, http.MethodGet, "/api/users")
	assert.Equal(t, strings.Repeat("x", 64), rec.Body.String(), "client still gets the full body")
	assert.Empty(t, store.data)
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	cfg := cacheTestConfig()
	cfg.Enabled = false
	mw := NewRedisCache(cfg, nil)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "ok")
	}

	rec := runThroughCache(t, mw, h, http.MethodGet, "/api/users")
	runThroughCache(t, mw, h, http.MethodGet, "/api/users")
	assert.Equal(t, 2, calls)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
