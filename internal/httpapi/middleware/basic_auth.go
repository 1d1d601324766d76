package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/config"
	"github.com/artvault/artvault/pkg/logger"
)

const (
	adminRealm = `Basic realm="artvault-admin"`

	// AdminUserKey holds the authenticated operator on the gin context.
	AdminUserKey = "adminUser"
)

// BasicAuth guards admin routes. Unlike APIKeyAuth it stays on when API key
// auth is disabled, as long as basic users are configured.
func BasicAuth(cfg *config.AppConfig) gin.HandlerFunc {
	users := cfg.APIServer.Auth.BasicUsers
	return func(c *gin.Context) {
		if !cfg.APIServer.Auth.Enabled && len(users) == 0 {
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok || !authorizedUser(users, username, password) {
			logger.Logger(c.Request.Context()).
				WithField("path", c.FullPath()).
				WithField("user", username).
				Warn("admin request rejected")
			c.Header("WWW-Authenticate", adminRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin credentials required"})
			return
		}

		c.Set(AdminUserKey, username)
		c.Next()
	}
}

// authorizedUser compares every configured user so the check takes the same
// time whichever entry matches.
func authorizedUser(users []config.BasicUser, username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	matched := 0
	for _, u := range users {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(u.Username))
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.Password))
		matched |= userOK & passOK
	}
	return matched == 1
}
