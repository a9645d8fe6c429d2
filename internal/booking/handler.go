package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/api"
	"yogaslot/internal/validation"
)

type Resolver func(c *gin.Context) Service

// Member returns the id of the logged-in member making the request.
type Member func(c *gin.Context) (int64, bool)

type AdminListQuery struct {
	api.PageQuery
	Filter
}

type Handler struct {
	resolve Resolver
	member  Member
}

func NewHandler(resolve Resolver, member Member) *Handler {
	return &Handler{resolve: resolve, member: member}
}

// RegisterRoutes mounts the member's own booking routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/slots", h.Slots)
	rg.POST("/bookings", h.Create)
	rg.PATCH("/bookings/:id", h.UpdateMine)
	rg.DELETE("/bookings/:id", h.DeleteMine)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListAll)
	rg.PATCH("/bookings/:id", h.Update)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.GET("/stats", h.Stats)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := h.requireMember(c)
	if !ok {
		return
	}
	var q api.PageQuery
	if !api.BindQuery(c, &q) {
		return
	}

	bookings, err := h.resolve(c).ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginate(bookings, q))
}

func (h *Handler) Slots(c *gin.Context) {
	c.JSON(http.StatusOK, SlotsResponse{Slots: validation.Slots()})
}

func (h *Handler) Create(c *gin.Context) {
	userID, ok := h.requireMember(c)
	if !ok {
		return
	}
	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	booking, err := h.resolve(c).Create(c.Request.Context(), userID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// UpdateMine lets a member move or cancel one of their own bookings.
func (h *Handler) UpdateMine(c *gin.Context) {
	var req UpdateRequest
	svc, id, ok := h.ownBooking(c)
	if !ok || !api.BindJSON(c, &req) {
		return
	}
	if req.Status != nil && *req.Status != StatusCancelled {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own bookings"})
		return
	}

	booking, err := svc.Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) DeleteMine(c *gin.Context) {
	svc, id, ok := h.ownBooking(c)
	if !ok {
		return
	}
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking deleted"})
}

// ListAll answers the admin booking list. Without criteria it is the full
// expanded list, otherwise the filtered one.
func (h *Handler) ListAll(c *gin.Context) {
	var q AdminListQuery
	if !api.BindQuery(c, &q) {
		return
	}

	svc := h.resolve(c)
	ctx := c.Request.Context()

	var bookings []BookingWithDetails
	var err error
	if q.Filter == (Filter{}) {
		bookings, err = svc.ListAllExpanded(ctx)
	} else {
		bookings, err = svc.Filter(ctx, q.Filter)
	}
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginate(bookings, q.PageQuery))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := api.ParseID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	booking, err := h.resolve(c).Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
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
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking deleted"})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.resolve(c).Stats(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) requireMember(c *gin.Context) (int64, bool) {
	userID, ok := h.member(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated", Redirect: "/login"})
		return 0, false
	}
	return userID, true
}

// ownBooking resolves the :id booking and checks it belongs to the caller.
func (h *Handler) ownBooking(c *gin.Context) (Service, int64, bool) {
	userID, ok := h.requireMember(c)
	if !ok {
		return nil, 0, false
	}
	id, ok := api.ParseID(c)
	if !ok {
		return nil, 0, false
	}

	svc := h.resolve(c)
	booking, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return nil, 0, false
	}
	if booking.UserID != userID {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only change your own bookings"})
		return nil, 0, false
	}
	return svc, id, true
}
