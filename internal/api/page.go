package api

import "yogaslot/internal/pagination"

const DefaultPageSize = 10

// PageQuery is the ?page=&limit= pair accepted by list endpoints.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,gte=1"`
	Limit int `form:"limit" binding:"omitempty,gte=1,max=100"`
}

// Paginate slices items into the requested page. A page outside the range
// leaves the cursor on page 1.
func Paginate[T any](items []T, q PageQuery) Page[T] {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}
	p := pagination.New(items, limit)
	if q.Page > 0 {
		p.GoToPage(q.Page)
	}
	return Page[T]{
		Data:        p.CurrentData(),
		Page:        p.CurrentPage(),
		Limit:       p.PageSize(),
		Total:       p.Total(),
		TotalPages:  p.TotalPages(),
		HasNextPage: p.HasNextPage(),
		HasPrevPage: p.HasPrevPage(),
	}
}
