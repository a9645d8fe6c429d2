package booking

import (
	"context"
	"net/url"
	"strconv"

	"yogaslot/internal/client"
)

const resource = "bookings"

type repository struct {
	client *client.Client
}

func NewRepository(c *client.Client) Repository {
	return &repository{client: c}
}

func expandParams() url.Values {
	return url.Values{"_expand": {"user", "course"}}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	if err := r.client.Get(ctx, resource, id, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindExpanded(ctx context.Context, id int64) (*BookingWithDetails, error) {
	var b BookingWithDetails
	if err := r.client.Get(ctx, resource, id, expandParams(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Booking, error) {
	var bookings []Booking
	params := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	if err := r.client.List(ctx, resource, params, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListExpanded(ctx context.Context, q Query) ([]BookingWithDetails, error) {
	params := expandParams()
	if q.UserID != 0 {
		params.Set("userId", strconv.FormatInt(q.UserID, 10))
	}
	if q.CourseID != 0 {
		params.Set("courseId", strconv.FormatInt(q.CourseID, 10))
	}
	if q.BookingDate != "" {
		params.Set("bookingDate", q.BookingDate)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}

	var bookings []BookingWithDetails
	if err := r.client.List(ctx, resource, params, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) FindBySlot(ctx context.Context, slot Slot) ([]Booking, error) {
	params := url.Values{
		"userId":      {strconv.FormatInt(slot.UserID, 10)},
		"courseId":    {strconv.FormatInt(slot.CourseID, 10)},
		"bookingDate": {slot.Date},
		"bookingTime": {slot.Time},
	}
	var bookings []Booking
	if err := r.client.List(ctx, resource, params, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) Create(ctx context.Context, b Booking) (*Booking, error) {
	var created Booking
	if err := r.client.Create(ctx, resource, b, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*Booking, error) {
	var updated Booking
	if err := r.client.Patch(ctx, resource, id, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, resource, id)
}
