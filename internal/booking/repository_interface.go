package booking

import "context"

type Repository interface {
	FindByID(ctx context.Context, id int64) (*Booking, error)
	FindExpanded(ctx context.Context, id int64) (*BookingWithDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]Booking, error)
	ListExpanded(ctx context.Context, q Query) ([]BookingWithDetails, error)
	FindBySlot(ctx context.Context, slot Slot) ([]Booking, error)
	Create(ctx context.Context, b Booking) (*Booking, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*Booking, error)
	Delete(ctx context.Context, id int64) error
}
