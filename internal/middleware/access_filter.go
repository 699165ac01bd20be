package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"uniportal/internal/authz"
	"uniportal/internal/token"
)

const (
	SessionCookie    = "uni_session"
	MfaPendingCookie = "uni_mfa_pending"
	loginPath        = "/login"
)

// protectedRole returns the role a path requires, or "" for public paths.
func protectedRole(path string) string {
	for prefix, role := range authz.ProtectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return role
		}
	}
	return ""
}

// AccessFilter gates the role-specific sections of the portal before any
// handler runs. It decides from the session cookie alone — no database
// access — so a role change or deactivation only takes effect once the
// token expires. Absent, expired, malformed and wrong-role tokens all
// get the same redirect.
func AccessFilter(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		required := protectedRole(c.Request.URL.Path)
		if required == "" {
			c.Next()
			return
		}

		redirect := func() {
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, target)
			c.Abort()
		}

		raw, err := c.Cookie(SessionCookie)
		if err != nil {
			redirect()
			return
		}
		claims := codec.Parse(raw)
		if claims == nil || claims.Kind != token.KindSession || claims.Role != required {
			redirect()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// SessionRequired is the JSON-API variant of the gate: 401 instead of a
// redirect, any role accepted.
func SessionRequired(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		claims := codec.Parse(raw)
		if claims == nil || claims.Kind != token.KindSession {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole runs after SessionRequired on API groups.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		role, _ := v.(string)
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
