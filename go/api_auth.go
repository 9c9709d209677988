package storefrontserver

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RoleHeader carries the caller role asserted by the identity provider in front of the API.
const RoleHeader = "X-User-Role"

const roleAdmin = "admin"

func isAdmin(c *gin.Context) bool {
	return strings.EqualFold(strings.TrimSpace(c.GetHeader(RoleHeader)), roleAdmin)
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			responder.Forbidden(c, "admin role required")
			return
		}
		c.Next()
	}
}

// RejectAdmin keeps admins away from purchasing routes.
func RejectAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin(c) {
			responder.Forbidden(c, "Admins cannot purchase products")
			return
		}
		c.Next()
	}
}
