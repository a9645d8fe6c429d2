package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/api"
)

// Resolver returns the user service of the session serving c.
type Resolver func(c *gin.Context) Service

type Handler struct {
	resolve Resolver
}

func NewHandler(resolve Resolver) *Handler {
	return &Handler{resolve: resolve}
}

// RegisterRoutes mounts the admin user console on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.GET("/users/:id", h.Get)
	rg.POST("/users", h.Create)
	rg.PUT("/users/:id", h.Update)
	rg.PATCH("/users/:id", h.Update)
	rg.DELETE("/users/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var q api.PageQuery
	if !api.BindQuery(c, &q) {
		return
	}
	users, err := h.resolve(c).List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginate(Profiles(users), q))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := api.ParseID(c)
	if !ok {
		return
	}
	u, err := h.resolve(c).Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Profile())
}

func (h *Handler) Create(c *gin.Context) {
	var form Form
	if !api.BindJSON(c, &form) {
		return
	}
	u, err := h.resolve(c).Create(c.Request.Context(), form)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u.Profile())
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := api.ParseID(c)
	if !ok {
		return
	}
	var form Form
	if !api.BindJSON(c, &form) {
		return
	}
	u, err := h.resolve(c).Update(c.Request.Context(), id, form)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Profile())
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := api.ParseID(c)
	if !ok {
		return
	}
	if err := h.resolve(c).Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted"})
}
