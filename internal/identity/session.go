package identity

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/evotodo/task-tracker-api/internal/constants"
)

// SessionResolver resolves the session cookie against the externally managed
// session store. No active session means no identity.
type SessionResolver struct{}

func NewSessionResolver() *SessionResolver {
	return &SessionResolver{}
}

func (r *SessionResolver) Resolve(c *gin.Context) (string, error) {
	session := sessions.Default(c)
	value := session.Get(constants.SessionKeyUserID)
	if value == nil {
		return "", ErrUnauthorized
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", ErrUnauthorized
	}
	return userID, nil
}
