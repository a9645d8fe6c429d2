package docstore

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/logger"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/:resource", h.List)
	r.POST("/:resource", h.Create)
	r.GET("/:resource/:id", h.Get)
	r.PATCH("/:resource/:id", h.Patch)
	r.PUT("/:resource/:id", h.Replace)
	r.DELETE("/:resource/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	resource := c.Param("resource")
	docs, err := h.store.List(c.Request.Context(), resource, ParseQuery(c.Request.URL.Query()))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.expand(c.Request.Context(), docs, c.QueryArray("_expand")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.store.Get(c.Request.Context(), c.Param("resource"), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.expand(c.Request.Context(), []Document{doc}, c.QueryArray("_expand")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) Create(c *gin.Context) {
	var doc Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	created, err := h.store.Create(c.Request.Context(), c.Param("resource"), doc)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Patch(c *gin.Context) {
	h.update(c, h.store.Patch)
}

func (h *Handler) Replace(c *gin.Context) {
	h.update(c, h.store.Replace)
}

type updateFunc func(ctx context.Context, resource string, id int64, doc Document) (Document, error)

func (h *Handler) update(c *gin.Context, apply updateFunc) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var doc Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	updated, err := apply(c.Request.Context(), c.Param("resource"), id, doc)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), c.Param("resource"), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// expand embeds, for each relation name, the document referenced by
// <name>Id from the <name>s resource. Dangling references are left out.
func (h *Handler) expand(ctx context.Context, docs []Document, relations []string) error {
	for _, rel := range relations {
		resource := rel + "s"
		if !isResource(resource) {
			continue
		}
		cache := make(map[int64]Document)
		for _, d := range docs {
			refID, ok := toInt64(d[rel+"Id"])
			if !ok {
				continue
			}
			target, seen := cache[refID]
			if !seen {
				var err error
				target, err = h.store.Get(ctx, resource, refID)
				if err != nil && !errors.Is(err, ErrNotFound) {
					return err
				}
				cache[refID] = target
			}
			if target != nil {
				d[rel] = target
			}
		}
	}
	return nil
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownResource), errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("docstore request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
