package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, allowed []string, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(New(allowed))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoopbackOnlyByDefault(t *testing.T) {
	rec := serve(t, nil, "http://localhost:5173")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(t, nil, "http://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestConfiguredOrigins(t *testing.T) {
	rec := serve(t, []string{"http://ui.elorrieta.local/"}, "http://ui.elorrieta.local")
	assert.Equal(t, "http://ui.elorrieta.local", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIsLoopbackOrigin(t *testing.T) {
	assert.True(t, IsLoopbackOrigin("http://127.0.0.1:8080"))
	assert.False(t, IsLoopbackOrigin("http://10.0.0.1"))
}
