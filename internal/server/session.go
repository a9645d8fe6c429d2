package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/app"
	"yogaslot/internal/session"
)

const appKey = "app"

type cookieConfig struct {
	name   string
	maxAge int
	secure bool
}

// SessionMiddleware attaches the App of the caller's browser session.
// Callers without a live session get a transient App that the registry only
// keeps once a login or registration succeeds on it. A stale cookie is
// cleared.
func SessionMiddleware(registry *app.Registry, cookie cookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie.name)

		a, held := registry.Lookup(c.Request.Context(), id)
		if id != "" && !held {
			setSessionCookie(c, cookie, "", -1)
		}

		c.Set(appKey, a)
		c.Next()

		// The document service refused the token mid-request.
		if held && !a.LoggedIn() {
			registry.Remove(a.ID)
		}
	}
}

// sessionHooks keep the registry and the cookie in step with logins and
// logouts.
func sessionHooks(registry *app.Registry, cookie cookieConfig) session.Hooks {
	return session.Hooks{
		Started: func(c *gin.Context) {
			a := registry.Adopt(AppFrom(c))
			setSessionCookie(c, cookie, a.ID, cookie.maxAge)
		},
		Ended: func(c *gin.Context) {
			registry.Remove(AppFrom(c).ID)
			setSessionCookie(c, cookie, "", -1)
		},
	}
}

// setSessionCookie replaces any session cookie already set on the response.
func setSessionCookie(c *gin.Context, cookie cookieConfig, value string, maxAge int) {
	header := c.Writer.Header()
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, cookie.name+"=") {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.name, value, maxAge, "/", "", cookie.secure, true)
}

// AppFrom returns the App SessionMiddleware attached to c.
func AppFrom(c *gin.Context) *app.App {
	return c.MustGet(appKey).(*app.App)
}

func identify(c *gin.Context) (string, bool) {
	u, ok := AppFrom(c).Session.CurrentUser()
	if !ok {
		return "", false
	}
	return u.Role, true
}

func memberID(c *gin.Context) (int64, bool) {
	u, ok := AppFrom(c).Session.CurrentUser()
	if !ok {
		return 0, false
	}
	return u.ID, true
}
