package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/apperr"
)

// ParseID reads the :id path parameter. It writes a 400 and returns false
// when the value is not a positive integer.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid id", Kind: string(apperr.KindInvalid)})
		return 0, false
	}
	return id, true
}
