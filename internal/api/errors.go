package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"yogaslot/internal/apperr"
	"yogaslot/internal/logger"
)

// StatusFor maps an error kind onto the HTTP status the web API answers with.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidCredentials, apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindDuplicateEmail, apperr.KindDuplicatePhone, apperr.KindDuplicateBooking, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// RespondError renders err. Field-level failures become a validation
// response; everything else an ErrorResponse.
func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		c.JSON(status, ValidationErrorResponse{Error: err.Error(), Details: fields})
		return
	}

	if kind == apperr.KindRequestFailed {
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}

	resp := ErrorResponse{Error: err.Error(), Kind: string(kind)}
	if kind == apperr.KindUnauthorized {
		resp.Redirect = "/login"
	}
	c.JSON(status, resp)
}

// BindJSON decodes the request body into req and runs its binding tags. On
// failure it writes a 400 and returns false.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// BindQuery is BindJSON for query parameters.
func BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Kind: string(apperr.KindInvalid)})
		return
	}

	details := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperr.FieldError{
			Field:   fe.Field(),
			Kind:    apperr.KindInvalid,
			Message: fieldMessage(fe),
		})
	}
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "validation failed", Details: details})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "eqfield":
		return fe.Field() + " must match " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "datetime":
		return fe.Field() + " must be a date in " + fe.Param() + " format"
	case "phone":
		return fe.Field() + " must be 10 or 11 digits"
	case "slot_time":
		return fe.Field() + " must be an hourly slot between 06:00 and 21:00"
	case "course_level":
		return fe.Field() + " must be Beginner, Intermediate, Advanced or All Levels"
	default:
		return fe.Field() + " is invalid"
	}
}
