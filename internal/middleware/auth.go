package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/blogcraft/blogcraft/internal/errors"
	"github.com/blogcraft/blogcraft/internal/util"
)

// UserIDKey is the context key the auth middleware stores the caller id under.
const UserIDKey = "user_id"

// Auth requires a valid bearer token and stores the caller's user id on the
// request context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			apperrors.HandleError(c, apperrors.New(apperrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}

		userID, err := util.ValidateToken(token)
		if err != nil {
			apperrors.HandleError(c, apperrors.Wrap(apperrors.ErrInvalidToken, "invalid bearer token", err))
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, or "" if the request
// did not pass the auth middleware.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(UserIDKey)
	s, _ := id.(string)
	return s
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
