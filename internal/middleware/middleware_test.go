package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/elores-client/internal/models"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

type stubTokens struct {
	claims *models.GatewayClaims
}

func (s stubTokens) Validate(token string) (*models.GatewayClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

type stubIdentity struct {
	user *models.User
}

func (s stubIdentity) Current() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func newProtectedRouter(identity SessionUser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWT(stubTokens{claims: &models.GatewayClaims{UserID: 7}}, identity))
	router.GET("/me", func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": claims.UserID})
	})
	return router
}

func TestJWT(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		identity stubIdentity
		status   int
	}{
		{"missing header", "", stubIdentity{user: &models.User{ID: 7}}, http.StatusUnauthorized},
		{"wrong scheme", "Basic good", stubIdentity{user: &models.User{ID: 7}}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", stubIdentity{user: &models.User{ID: 7}}, http.StatusUnauthorized},
		{"logged out", "Bearer good", stubIdentity{}, http.StatusUnauthorized},
		{"other user", "Bearer good", stubIdentity{user: &models.User{ID: 8}}, http.StatusUnauthorized},
		{"valid", "Bearer good", stubIdentity{user: &models.User{ID: 7}}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProtectedRouter(tc.identity)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

type recordingHTTPObserver struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingHTTPObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, method+" "+path)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingHTTPObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/students/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/students/21", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, []string{"GET /students/:id", "GET unmatched"}, observer.paths)
}
