package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/elducche/mddcli/internal/logging"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// requireAuth admits requests carrying a valid bearer token for an existing
// user and stores the user id in the gin context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			s.unauthorized(c, msgMissingToken)
			return
		}

		claims, err := ParseToken(token, s.secret)
		if err != nil {
			s.log.Debug(c.Request.Context(), "token rejected", "path", c.Request.URL.Path, "error", err)
			s.unauthorized(c, msgInvalidToken)
			return
		}

		if _, err := s.store.User(claims.UserID); err != nil {
			s.unauthorized(c, msgInvalidToken)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func (s *Server) unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetHeader("X-Request-ID"),
		)
	}
}
