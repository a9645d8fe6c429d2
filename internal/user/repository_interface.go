package user

import "context"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, id int64, patch map[string]interface{}) (*User, error)
	Delete(ctx context.Context, id int64) error
}
