package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/shared/constants"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

// routeEnforcer is satisfied by *permission.Enforcer.
type routeEnforcer interface {
	Enforce(role, path, method string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer routeEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer routeEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// Authorize checks the caller's role against the route policy. The matched
// route template is used so path parameters do not leak into policies.
func (m *PermissionMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := m.enforcer.Enforce(role, path, c.Request.Method)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "role", role, "path", path)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied",
				"user_id", c.GetUint(constants.ContextKeyUserID),
				"role", role,
				"path", path,
				"method", c.Request.Method,
			)
			utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
