package course

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/api"
	"yogaslot/internal/state"
)

type Resolver func(c *gin.Context) Service

type ListQuery struct {
	api.PageQuery
	Q    string `form:"q"`
	Type string `form:"type"`
	Sort string `form:"sort" binding:"omitempty,oneof=name price type"`
}

type Handler struct {
	resolve Resolver
}

func NewHandler(resolve Resolver) *Handler {
	return &Handler{resolve: resolve}
}

// RegisterRoutes mounts the public catalog.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses", h.List)
	rg.GET("/courses/:id", h.Get)
}

// RegisterAdminRoutes mounts catalog management.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses", h.List)
	rg.POST("/courses", h.Create)
	rg.PATCH("/courses/:id", h.Update)
	rg.PUT("/courses/:id", h.Update)
	rg.DELETE("/courses/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if !api.BindQuery(c, &q) {
		return
	}

	svc := h.resolve(c)
	ctx := c.Request.Context()

	var courses []Course
	var err error
	switch {
	case q.Q != "":
		courses, err = svc.Search(ctx, q.Q)
		if err == nil && q.Type != "" {
			courses = state.Without(courses, func(x Course) bool { return x.Type != q.Type })
		}
	case q.Type != "":
		courses, err = svc.ListByType(ctx, q.Type)
	default:
		courses, err = svc.Fetch(ctx)
	}
	if err != nil {
		api.RespondError(c, err)
		return
	}

	if key, ok := ParseSortKey(q.Sort); ok {
		courses = Sorted(courses, key)
		svc.SortBy(key)
	}
	c.JSON(http.StatusOK, api.Paginate(courses, q.PageQuery))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := api.ParseID(c)
	if !ok {
		return
	}
	course, err := h.resolve(c).Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) Create(c *gin.Context) {
	var form Form
	if !api.BindJSON(c, &form) {
		return
	}
	course, err := h.resolve(c).Create(c.Request.Context(), form)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
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
	course, err := h.resolve(c).Update(c.Request.Context(), id, patch)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
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
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Course deleted"})
}
