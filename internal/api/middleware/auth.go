// Package middleware provides the gin middleware chain fronting navcore's
// HTTP API: JWT bearer auth and per-key rate limiting. The claims shape and
// RequireAuth/RequireRole split follow the teacher's middleware/auth
// package, adapted from jwt/v4 to v5 and with bcrypt-hashed API keys minting
// the tokens instead of a bare pass-through secret.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload minted for an API key.
type Claims struct {
	KeyID string `json:"key_id"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator mints and verifies navcore API JWTs.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthenticator returns an Authenticator signing/verifying with secret.
// A zero ttl defaults to 24h, matching the teacher's 72h-style fixed expiry
// convention but shortened for a machine-to-machine routing API.
func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

// HashAPIKey bcrypt-hashes a raw API key for storage.
func HashAPIKey(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyAPIKey reports whether raw matches the stored bcrypt hash.
func VerifyAPIKey(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// Mint issues a signed JWT for a verified API key.
func (a *Authenticator) Mint(keyID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		KeyID: keyID,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

const claimsContextKey = "navcore_claims"

// RequireAuth rejects requests without a valid "Bearer <jwt>" Authorization
// header and stores the parsed Claims in the gin context.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole only admits requests whose authenticated claims carry one of
// roles. Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, ok := c.Get(claimsContextKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims := v.(*Claims)
		if _, ok := allowed[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom extracts the authenticated Claims a prior RequireAuth call
// attached to the context, if any.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
