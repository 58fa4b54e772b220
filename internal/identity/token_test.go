package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithHeader(t *testing.T, header string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c
}

func TestTokenResolver_IssueAndResolve(t *testing.T) {
	resolver := NewTokenResolver("test-secret", "task-tracker-api", time.Hour)

	token, err := resolver.Issue("user-123")
	require.NoError(t, err)

	userID, err := resolver.Resolve(contextWithHeader(t, "Bearer "+token))
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenResolver_MissingHeader(t *testing.T) {
	resolver := NewTokenResolver("test-secret", "task-tracker-api", time.Hour)

	_, err := resolver.Resolve(contextWithHeader(t, ""))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenResolver_MalformedHeader(t *testing.T) {
	resolver := NewTokenResolver("test-secret", "task-tracker-api", time.Hour)

	for _, header := range []string{"Basic abc", "Bearer", "Bearer not-a-jwt"} {
		_, err := resolver.Resolve(contextWithHeader(t, header))
		assert.ErrorIs(t, err, ErrUnauthorized, "header %q", header)
	}
}

func TestTokenResolver_WrongSecret(t *testing.T) {
	issuer := NewTokenResolver("secret-a", "task-tracker-api", time.Hour)
	resolver := NewTokenResolver("secret-b", "task-tracker-api", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = resolver.Resolve(contextWithHeader(t, "Bearer "+token))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenResolver_ExpiredToken(t *testing.T) {
	resolver := NewTokenResolver("test-secret", "task-tracker-api", time.Hour)

	past := time.Now().Add(-2 * time.Hour)
	resolver.now = func() time.Time { return past }
	token, err := resolver.Issue("user-123")
	require.NoError(t, err)

	resolver.now = time.Now
	_, err = resolver.Resolve(contextWithHeader(t, "Bearer "+token))
	assert.ErrorIs(t, err, ErrUnauthorized)
}
