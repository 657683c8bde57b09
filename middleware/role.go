package middleware

import (
	"net/http"

	"revamp/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only callers whose identity carries one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		identity := IdentityFrom(c)
		if identity.SubjectID == "" {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		if !allowed[identity.Role] {
			utils.JSONError(c, http.StatusForbidden, "FORBIDDEN", "insufficient role")
			return
		}
		c.Next()
	}
}
