package identity

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// TokenResolver validates locally issued HS256 bearer tokens and extracts
// the subject as the user id.
type TokenResolver struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenResolver(secret, issuer string, ttl time.Duration) *TokenResolver {
	return &TokenResolver{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a new token for the given user.
func (r *TokenResolver) Issue(userID string) (string, error) {
	now := r.now()
	claims := jwt.RegisteredClaims{
		Issuer:    r.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(r.secret)
}

// TTL returns the configured token lifetime.
func (r *TokenResolver) TTL() time.Duration {
	return r.ttl
}

// Resolve validates the Authorization header. Invalid signature, expiry and
// malformed tokens are indistinguishable to the caller.
func (r *TokenResolver) Resolve(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrUnauthorized
	}
	raw := strings.TrimPrefix(header, bearerPrefix)

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return r.secret, nil
	}, jwt.WithTimeFunc(r.now))
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrUnauthorized
	}

	return claims.Subject, nil
}
