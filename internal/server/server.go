package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/app"
	"yogaslot/internal/auth"
	"yogaslot/internal/booking"
	"yogaslot/internal/course"
	"yogaslot/internal/logger"
	"yogaslot/internal/offering"
	"yogaslot/internal/session"
	"yogaslot/internal/user"
	"yogaslot/internal/validation"
)

type Options struct {
	Registry *app.Registry

	CookieName   string
	CookieTTL    time.Duration
	SecureCookie bool

	// CORSOrigins lists the browser origins allowed to call the API with
	// credentials. Other origins get no CORS headers.
	CORSOrigins []string

	RateLimitRPS   float64
	RateLimitBurst int

	// Mailer is nil when email delivery is disabled.
	Mailer Mailer
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	opts   Options

	// cancel stops the background work of the middleware.
	cancel context.CancelFunc
}

func New(opts Options) *Server {
	validation.Register()

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{opts: opts, cancel: cancel}
	s.router = s.routes(ctx)
	return s
}

func (s *Server) routes(ctx context.Context) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware(), MetricsMiddleware(), corsMiddleware(s.opts.CORSOrigins))

	router.GET("/health", Health(s.opts.Mailer))
	router.GET("/metrics", Metrics())

	rg := router.Group("/api")
	rg.Use(RateLimitMiddleware(ctx, s.opts.RateLimitRPS, s.opts.RateLimitBurst))
	rg.Use(SessionMiddleware(s.opts.Registry, s.cookie()))

	sessions := session.NewHandler(func(c *gin.Context) session.Service { return AppFrom(c).Session }).
		WithHooks(sessionHooks(s.opts.Registry, s.cookie()))
	users := user.NewHandler(func(c *gin.Context) user.Service { return AppFrom(c).Users })
	courses := course.NewHandler(func(c *gin.Context) course.Service { return AppFrom(c).Courses })
	offerings := offering.NewHandler(func(c *gin.Context) offering.Service { return AppFrom(c).Offerings })
	bookings := booking.NewHandler(func(c *gin.Context) booking.Service { return AppFrom(c).Bookings }, memberID)

	sessions.RegisterRoutes(rg)
	courses.RegisterRoutes(rg)
	offerings.RegisterRoutes(rg)

	member := rg.Group("")
	member.Use(auth.Guard(identify, ""))
	sessions.RegisterProtectedRoutes(member)
	bookings.RegisterRoutes(member)

	admin := rg.Group("/admin")
	admin.Use(auth.Guard(identify, user.RoleAdmin))
	users.RegisterRoutes(admin)
	courses.RegisterAdminRoutes(admin)
	bookings.RegisterAdminRoutes(admin)
	offerings.RegisterAdminRoutes(admin)
	admin.GET("/dashboard", Dashboard)
	if s.opts.Mailer != nil {
		admin.POST("/email/test", TestEmail(s.opts.Mailer))
	}

	return router
}

func (s *Server) cookie() cookieConfig {
	return cookieConfig{
		name:   s.opts.CookieName,
		maxAge: int(s.opts.CookieTTL / time.Second),
		secure: s.opts.SecureCookie,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on port until Shutdown is called.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("web server listening", "port", port)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener, if started, and the middleware's background
// work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// corsMiddleware allows credentialed calls from the listed origins only.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}

	return func(c *gin.Context) {
		c.Writer.Header().Add("Vary", "Origin")
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
