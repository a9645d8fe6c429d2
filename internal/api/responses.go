package api

import "yogaslot/internal/apperr"

type ErrorResponse struct {
	Error    string `json:"error" example:"something went wrong"`
	Kind     string `json:"kind,omitempty" example:"duplicate_booking"`
	Redirect string `json:"redirect,omitempty" example:"/login"`
}

type ValidationErrorResponse struct {
	Error   string              `json:"error" example:"validation failed"`
	Details []apperr.FieldError `json:"details"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status     string `json:"status" example:"ok"`
	EmailQueue *int64 `json:"emailQueue,omitempty" example:"0"`
}

// Page wraps one page of a client-side paginated list.
type Page[T any] struct {
	Data        []T  `json:"data"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}
