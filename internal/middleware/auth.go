package middleware

import (
	"strings"

	"platform-auth/internal/apperr"
	"platform-auth/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Paths that never require a bearer token.
var allowListPrefixes = []string{
	"/auth/register",
	"/auth/login",
	"/docs",
	"/healthz",
	"/metrics",
}

type failBody struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// AuthMiddleware is the request gate: every call outside the allow-list must
// present a bearer token whose signature, expiry, and backing session all
// check out. On success the identity is attached to the request context for
// downstream handlers.
func AuthMiddleware(auth service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowListed(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("No authorization header provided", zap.String("path", c.Request.URL.Path))
			abortWithError(c, apperr.New(apperr.Unauthorized, apperr.MsgInvalidCreds))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := auth.VerifyToken(token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if _, err := auth.ValidateSession(claims); err != nil {
			abortWithError(c, err)
			return
		}

		c.Set("username", claims.Subject)
		c.Set("user_id", claims.SubID)
		c.Set("session_id", claims.Session)

		c.Next()
	}
}

func allowListed(path string) bool {
	for _, prefix := range allowListPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func abortWithError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Unauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), failBody{Status: "Fail", Detail: apperr.Detail(err)})
}
