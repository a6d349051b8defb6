package middleware

import (
	"net/http"

	"talent-portal/internal/user/model"
	"talent-portal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware grants access when the authenticated identity holds at
// least one of the allowed roles.
func RoleMiddleware(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRolesKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Roles not found in context")
			c.Abort()
			return
		}

		roles, ok := value.([]string)
		if !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "Roles not found in context")
			c.Abort()
			return
		}

		roleSet := make(model.RoleSet, len(roles))
		for i, r := range roles {
			roleSet[i] = model.Role(r)
		}

		for _, allowed := range allowedRoles {
			if roleSet.Has(allowed) {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin, model.RoleSuperAdmin)
}

func SuperAdminOnly() gin.HandlerFunc {
	return RoleMiddleware(model.RoleSuperAdmin)
}
