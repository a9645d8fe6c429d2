package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/api"
	"yogaslot/internal/user"
)

// Resolver returns the session service of the browser session serving c.
type Resolver func(c *gin.Context) Service

type AuthResponse struct {
	User    user.Profile `json:"user"`
	Message string       `json:"message"`
}

// Hooks run after a session starts or ends, before the response is
// written, so they may still set headers.
type Hooks struct {
	Started func(c *gin.Context)
	Ended   func(c *gin.Context)
}

type Handler struct {
	resolve Resolver
	hooks   Hooks
}

func NewHandler(resolve Resolver) *Handler {
	return &Handler{resolve: resolve}
}

func (h *Handler) WithHooks(hooks Hooks) *Handler {
	h.hooks = hooks
	return h
}

// RegisterRoutes mounts login, registration and logout on a public group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)
}

// RegisterProtectedRoutes mounts the endpoints that need a logged-in user.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/profile", h.UpdateProfile)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindJSON(c, &req) {
		return
	}

	svc := h.resolve(c)
	u, err := svc.Login(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	h.started(c)
	msg := svc.State().SuccessMessage
	svc.ClearSuccessMessage()
	c.JSON(http.StatusOK, AuthResponse{User: u.Profile(), Message: msg})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindJSON(c, &req) {
		return
	}

	svc := h.resolve(c)
	u, err := svc.Register(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	h.started(c)
	msg := svc.State().SuccessMessage
	svc.ClearSuccessMessage()
	c.JSON(http.StatusCreated, AuthResponse{User: u.Profile(), Message: msg})
}

// Logout always ends the session; a storage failure is still reported.
func (h *Handler) Logout(c *gin.Context) {
	err := h.resolve(c).Logout(c.Request.Context())
	h.ended(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out"})
}

// Me reports the session state; a pending error is shown once.
func (h *Handler) Me(c *gin.Context) {
	svc := h.resolve(c)
	view := svc.State().View()
	if view.Error != "" {
		svc.ClearError()
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if !api.BindJSON(c, &req) {
		return
	}
	u, err := h.resolve(c).UpdateProfile(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Profile())
}

func (h *Handler) started(c *gin.Context) {
	if h.hooks.Started != nil {
		h.hooks.Started(c)
	}
}

func (h *Handler) ended(c *gin.Context) {
	if h.hooks.Ended != nil {
		h.hooks.Ended(c)
	}
}
