package course

import (
	"context"
	"net/url"

	"yogaslot/internal/client"
)

const resource = "courses"

type repository struct {
	client *client.Client
}

func NewRepository(c *client.Client) Repository {
	return &repository{client: c}
}

func (r *repository) list(ctx context.Context, params url.Values) ([]Course, error) {
	var courses []Course
	if err := r.client.List(ctx, resource, params, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repository) List(ctx context.Context) ([]Course, error) {
	return r.list(ctx, nil)
}

func (r *repository) Search(ctx context.Context, q string) ([]Course, error) {
	return r.list(ctx, url.Values{"q": {q}})
}

func (r *repository) ListByType(ctx context.Context, courseType string) ([]Course, error) {
	return r.list(ctx, url.Values{"type": {courseType}})
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Course, error) {
	var c Course
	if err := r.client.Get(ctx, resource, id, nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c Course) (*Course, error) {
	var created Course
	if err := r.client.Create(ctx, resource, c, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*Course, error) {
	var updated Course
	if err := r.client.Patch(ctx, resource, id, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, resource, id)
}
