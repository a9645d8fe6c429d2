package offering

import (
	"context"

	"yogaslot/internal/client"
)

const resource = "services"

type repository struct {
	client *client.Client
}

func NewRepository(c *client.Client) Repository {
	return &repository{client: c}
}

func (r *repository) List(ctx context.Context) ([]Offering, error) {
	var out []Offering
	if err := r.client.List(ctx, resource, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Offering, error) {
	var o Offering
	if err := r.client.Get(ctx, resource, id, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o Offering) (*Offering, error) {
	var created Offering
	if err := r.client.Create(ctx, resource, o, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*Offering, error) {
	var updated Offering
	if err := r.client.Patch(ctx, resource, id, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, resource, id)
}
