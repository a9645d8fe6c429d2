package offering

import "context"

type Repository interface {
	List(ctx context.Context) ([]Offering, error)
	FindByID(ctx context.Context, id int64) (*Offering, error)
	Create(ctx context.Context, o Offering) (*Offering, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*Offering, error)
	Delete(ctx context.Context, id int64) error
}
