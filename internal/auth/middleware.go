package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

// RequireScopes rejects requests without a valid bearer token carrying every
// listed scope. Missing credential is 401, anything wrong with the
// credential (bad signature, expired, under-scoped) is 403.
func RequireScopes(v Verifier, scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Requires authentication",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Requires authentication",
			})
			return
		}

		claims, err := v.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": err.Error(),
			})
			return
		}

		for _, scope := range scopes {
			if !claims.HasScope(scope) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"detail": fmt.Sprintf("Missing %q scope", scope),
				})
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims stored by RequireScopes, nil when
// the route was reached without the middleware.
func ClaimsFrom(c *gin.Context) *Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}
