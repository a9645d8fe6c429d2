package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yogaslot/internal/api"
)

// Mailer is the slice of the email service the system endpoints use.
type Mailer interface {
	Send(ctx context.Context, to, name, subject, body string) error
	QueueLength(ctx context.Context) int64
}

type TestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Health reports liveness and, when email is enabled, the pending queue.
func Health(mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := api.HealthResponse{Status: "ok"}
		if mailer != nil {
			n := mailer.QueueLength(c.Request.Context())
			resp.EmailQueue = &n
		}
		c.JSON(http.StatusOK, resp)
	}
}

func TestEmail(mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TestEmailRequest
		if !api.BindJSON(c, &req) {
			return
		}

		if err := mailer.Send(c.Request.Context(), req.Email, "YogaSlot Admin", "Test email from YogaSlot", "Email delivery is working!"); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, api.MessageResponse{Message: "Email queued successfully"})
	}
}

func Dashboard(c *gin.Context) {
	d, err := AppFrom(c).Dashboard(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
