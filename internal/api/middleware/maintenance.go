package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

// maintenanceExempt lists route prefixes that stay reachable during
// maintenance so users can still sign in (and admins can turn the mode off).
var maintenanceExempt = []string{
	"/v1/ping",
	"/v1/auth/",
}

func exemptFromMaintenance(path string) bool {
	for _, prefix := range maintenanceExempt {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// MaintenanceMiddleware blocks every non-exempt route for non-admins while
// the global maintenance flag is on. It expects OptionalAuthMiddleware (or
// AuthMiddleware) to have run first so admin identity is in the context.
func MaintenanceMiddleware(moderation services.IModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, maintenance := moderation.Flags(c.Request.Context())
		if !maintenance {
			c.Next()
			return
		}
		if exemptFromMaintenance(c.Request.URL.Path) || c.GetBool(ContextKeyIsAdmin) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service under maintenance"})
	}
}
