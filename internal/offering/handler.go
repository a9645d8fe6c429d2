package offering

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/api"
)

type Resolver func(c *gin.Context) Service

type Handler struct {
	resolve Resolver
}

func NewHandler(resolve Resolver) *Handler {
	return &Handler{resolve: resolve}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.List)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.List)
	rg.GET("/services/:id", h.Get)
	rg.POST("/services", h.Create)
	rg.PATCH("/services/:id", h.Update)
	rg.DELETE("/services/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.resolve(c).Fetch(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := api.ParseID(c)
	if !ok {
		return
	}
	o, err := h.resolve(c).Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) Create(c *gin.Context) {
	var form Form
	if !api.BindJSON(c, &form) {
		return
	}
	o, err := h.resolve(c).Create(c.Request.Context(), form)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := api.ParseID(c)
	if !ok {
		return
	}
	var patch Patch
	if !api.BindJSON(c, &patch) {
		return
	}
	o, err := h.resolve(c).Update(c.Request.Context(), id, patch)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
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
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Service deleted"})
}
