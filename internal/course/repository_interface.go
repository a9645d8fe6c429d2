package course

import "context"

type Repository interface {
	List(ctx context.Context) ([]Course, error)
	Search(ctx context.Context, q string) ([]Course, error)
	ListByType(ctx context.Context, courseType string) ([]Course, error)
	FindByID(ctx context.Context, id int64) (*Course, error)
	Create(ctx context.Context, c Course) (*Course, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*Course, error)
	Delete(ctx context.Context, id int64) error
}
