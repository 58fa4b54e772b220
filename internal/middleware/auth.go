package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/evotodo/task-tracker-api/internal/constants"
	apierrors "github.com/evotodo/task-tracker-api/internal/errors"
	"github.com/evotodo/task-tracker-api/internal/identity"
)

// RequireAuth resolves the request credential and aborts with 401 when it
// fails. Handlers behind it can assume a resolved user id in the context.
func RequireAuth(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolver.Resolve(c)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
