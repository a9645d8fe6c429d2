package user

import (
	"context"
	"net/url"

	"yogaslot/internal/apperr"
	"yogaslot/internal/client"
)

const resource = "users"

type repository struct {
	client *client.Client
}

func NewRepository(c *client.Client) Repository {
	return &repository{client: c}
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.client.List(ctx, resource, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.client.Get(ctx, resource, id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail runs an exact equality query on email.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var users []User
	if err := r.client.List(ctx, resource, url.Values{"email": {email}}, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "email not found")
	}
	return &users[0], nil
}

func (r *repository) Create(ctx context.Context, u User) (*User, error) {
	var created User
	body := map[string]interface{}{
		"email":    u.Email,
		"password": u.Password,
		"fullName": u.FullName,
		"role":     u.Role,
	}
	if u.Phone != "" {
		body["phone"] = u.Phone
	}
	if err := r.client.Create(ctx, resource, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int64, patch map[string]interface{}) (*User, error) {
	var updated User
	if err := r.client.Patch(ctx, resource, id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, resource, id)
}
