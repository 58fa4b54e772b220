// Package identity turns an inbound credential into a canonical user id.
// Exactly one resolver is selected at startup; every task operation passes
// through it before anything else runs.
package identity

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrUnauthorized is returned for any missing, malformed, expired or
// otherwise invalid credential. Callers never learn which.
var ErrUnauthorized = errors.New("identity: unauthorized")

// Resolver validates the credential carried by a request and returns the
// owning user id. Resolvers are pure lookups with no side effects.
type Resolver interface {
	Resolve(c *gin.Context) (string, error)
}
