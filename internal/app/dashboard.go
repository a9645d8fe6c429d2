package app

import (
	"context"

	"yogaslot/internal/booking"
)

const dashboardTop = 5

type Dashboard struct {
	TotalUsers       int                          `json:"totalUsers"`
	TotalCourses     int                          `json:"totalCourses"`
	TotalBookings    int                          `json:"totalBookings"`
	BookingsByStatus map[string]int               `json:"bookingsByStatus"`
	TopCourses       []booking.CourseStat         `json:"topCourses"`
	RecentBookings   []booking.BookingWithDetails `json:"recentBookings"`
}

// Dashboard gathers the admin overview. Top courses and recent bookings
// are the first five in document order.
func (a *App) Dashboard(ctx context.Context) (*Dashboard, error) {
	users, err := a.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := a.Courses.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := a.Bookings.ListAllExpanded(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{
		booking.StatusPending:   0,
		booking.StatusConfirmed: 0,
		booking.StatusCancelled: 0,
	}
	for _, b := range bookings {
		byStatus[b.Status]++
	}

	return &Dashboard{
		TotalUsers:       len(users),
		TotalCourses:     len(courses),
		TotalBookings:    len(bookings),
		BookingsByStatus: byStatus,
		TopCourses:       first(booking.ComputeStats(bookings), dashboardTop),
		RecentBookings:   first(bookings, dashboardTop),
	}, nil
}

func first[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
