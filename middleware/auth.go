package middleware

import (
	"net/http"
	"strings"

	"shopper-backend/auth"

	"github.com/gin-gonic/gin"
)

const (
	// TokenHeader carries the raw token for clients that do not send
	// an Authorization header.
	TokenHeader = "auth-token"

	claimsKey = "claims"
)

// TokenVerifier checks a raw token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// ExtractToken reads "Authorization: Bearer <token>" and falls back to the
// auth-token header.
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader(TokenHeader))
}

// AuthRequired rejects requests without a valid token and stores the claims.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "please authenticate using a valid token",
			})
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "please authenticate using a valid token",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RoleRequired runs after AuthRequired and checks the role claim.
func RoleRequired(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}
		if !claims.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "access denied: " + role + " role required",
			})
			return
		}
		c.Next()
	}
}

// Claims returns the claims stored by AuthRequired, or nil.
func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
