package middleware

import (
	"net/http"
	"strings"

	"github.com/thewspl/financialfreedommobile/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the Firebase ID token and sets the uid in context.
func AuthRequired(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "invalid authorization format"})
			return
		}
		uid, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "invalid or expired token"})
			return
		}
		c.Set("uid", uid)
		c.Next()
	}
}

// GetUID returns the authenticated user's uid from context (must be used after AuthRequired).
func GetUID(c *gin.Context) string {
	v, _ := c.Get("uid")
	if v == nil {
		return ""
	}
	return v.(string)
}
