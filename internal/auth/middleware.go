package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/api"
	"yogaslot/internal/apperr"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// OptionalBearer lets requests without an Authorization header through, but
// rejects a header carrying a malformed, invalid or expired token.
func OptionalBearer(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := ValidateToken(strings.TrimSpace(parts[1]), secret)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or malformed token"})
			}
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// Decide applies the route guard: a logged-out visitor goes to the login
// page, a user lacking requiredRole goes home. An empty requiredRole only
// demands a login.
func Decide(loggedIn bool, role, requiredRole string) (redirect string, allowed bool) {
	if !loggedIn {
		return LoginPath, false
	}
	if requiredRole != "" && role != requiredRole {
		return HomePath, false
	}
	return "", true
}

// Identity reports whether the request belongs to a logged-in session and
// with which role.
type Identity func(c *gin.Context) (role string, loggedIn bool)

// Guard protects a route group. Browsers asking for HTML are redirected;
// API callers get 401 or 403 with the redirect target in the body.
func Guard(identify Identity, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, loggedIn := identify(c)
		redirect, ok := Decide(loggedIn, role, requiredRole)
		if ok {
			c.Next()
			return
		}

		if wantsHTML(c.Request) {
			c.Redirect(http.StatusFound, redirect)
			c.Abort()
			return
		}

		status := http.StatusForbidden
		msg := "Insufficient permissions"
		if redirect == LoginPath {
			status = http.StatusUnauthorized
			msg = "Login required"
		}
		c.AbortWithStatusJSON(status, api.ErrorResponse{
			Error:    msg,
			Kind:     string(apperr.KindUnauthorized),
			Redirect: redirect,
		})
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
