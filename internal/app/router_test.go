package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/pkg/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := viper.New()
	config.SetDefaults(v)
	v.Set("SERVER_HOST", "127.0.0.1")
	v.Set("SERVER_PORT", 1)
	v.Set("EXPORTS_DIR", t.TempDir())
	cfg := config.FromViper(v)

	ctx, cancel := context.WithCancel(context.Background())
	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		a.Close(context.Background())
		cancel()
	})
	return a
}

func serve(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterPublicEndpoints(t *testing.T) {
	a := newTestApp(t)
	r := NewRouter(a)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "", "").Code)

	ready := serve(r, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"connected":false`)

	metrics := serve(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "http_requests_total")

	login := serve(r, http.MethodPost, "/api/v1/auth/login", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, login.Code)
}

func TestRouterProtectedRoutesNeedLiveSession(t *testing.T) {
	a := newTestApp(t)
	r := NewRouter(a)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/auth/me", "", "").Code)

	user := models.User{ID: 7, Email: "ane@elorrieta.eus", TypeName: "profesor"}
	token, _, err := a.Tokens.Issue(user)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/auth/me", token, "").Code)

	a.Identity.Set(user)
	me := serve(r, http.MethodGet, "/api/v1/auth/me", token, "")
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "ane@elorrieta.eus")

	a.Identity.Clear()
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/students", token, "").Code)
}

func TestRouterDocsHiddenInProduction(t *testing.T) {
	a := newTestApp(t)
	a.Config.Env = config.EnvProduction
	r := NewRouter(a)
	gin.SetMode(gin.TestMode)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/docs/index.html", "", "").Code)
}
