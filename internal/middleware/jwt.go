package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/logger"
	"github.com/noah-isme/elores-client/pkg/response"
)

// ContextUserKey is the gin context key storing gateway claims.
const ContextUserKey = "currentUser"

// TokenValidator parses gateway bearer tokens.
type TokenValidator interface {
	Validate(token string) (*models.GatewayClaims, error)
}

// SessionUser reports the user currently logged in through the session.
type SessionUser interface {
	Current() (models.User, bool)
}

// JWT protects routes with a gateway bearer token. The token must also
// belong to the user of the live session, so tokens stop working at logout.
func JWT(tokens TokenValidator, identity SessionUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		user, ok := identity.Current()
		if !ok || user.ID != claims.UserID {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthenticated, "session ended, log in again"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		logger.AddFields(c, zap.Int("user_id", claims.UserID))
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by JWT.
func ClaimsFromContext(c *gin.Context) (*models.GatewayClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.GatewayClaims)
	return claims, ok
}
