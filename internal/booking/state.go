package booking

import "yogaslot/internal/state"

const (
	opFetchAll  = "bookings/fetchAll"
	opFetchUser = "bookings/fetchUser"
	opCreate    = "bookings/create"
	opUpdate    = "bookings/update"
	opDelete    = "bookings/delete"
	opFilter    = "bookings/filter"
	opStats     = "bookings/stats"

	actionClearError        = "bookings/clearError"
	actionClearUserBookings = "bookings/clearUserBookings"
)

var ops = []string{opFetchAll, opFetchUser, opCreate, opUpdate, opDelete, opFilter, opStats}

// State holds the member's own bookings and the admin console's expanded
// list side by side.
type State struct {
	Bookings     []BookingWithDetails
	UserBookings []Booking
	Stats        []CourseStat
	IsLoading    bool
	Error        string
}

func reduce(prev State, a state.Action) State {
	for _, op := range ops {
		switch a.Type {
		case op + "/pending":
			prev.IsLoading = true
			prev.Error = ""
			return prev
		case op + "/rejected":
			prev.IsLoading = false
			prev.Error = a.Err.Error()
			return prev
		}
	}

	switch a.Type {
	case opFetchAll + "/fulfilled", opFilter + "/fulfilled":
		prev.IsLoading = false
		prev.Bookings = state.Append(nil, a.Payload.([]BookingWithDetails)...)
	case opFetchUser + "/fulfilled":
		prev.IsLoading = false
		prev.UserBookings = state.Append(nil, a.Payload.([]Booking)...)
	case opCreate + "/fulfilled":
		prev.IsLoading = false
		prev.UserBookings = state.Append(prev.UserBookings, a.Payload.(Booking))
	case opUpdate + "/fulfilled":
		b := a.Payload.(Booking)
		prev.IsLoading = false
		prev.UserBookings = state.Replace(prev.UserBookings, func(x Booking) bool { return x.ID == b.ID }, b)
		prev.Bookings = replaceDetails(prev.Bookings, b)
	case opDelete + "/fulfilled":
		id := a.Payload.(int64)
		prev.IsLoading = false
		prev.UserBookings = state.Without(prev.UserBookings, func(x Booking) bool { return x.ID == id })
		prev.Bookings = state.Without(prev.Bookings, func(x BookingWithDetails) bool { return x.ID == id })
	case opStats + "/fulfilled":
		prev.IsLoading = false
		prev.Stats = state.Append(nil, a.Payload.([]CourseStat)...)

	case actionClearError:
		prev.Error = ""
	case actionClearUserBookings:
		prev.UserBookings = nil
	}
	return prev
}

// replaceDetails swaps in the updated booking while keeping the member and
// course already embedded.
func replaceDetails(items []BookingWithDetails, b Booking) []BookingWithDetails {
	for i, x := range items {
		if x.ID == b.ID {
			return state.Replace(items, func(y BookingWithDetails) bool { return y.ID == b.ID },
				BookingWithDetails{Booking: b, User: items[i].User, Course: items[i].Course})
		}
	}
	return items
}

// ComputeStats counts bookings per course in the order courses are first
// seen. Bookings whose course no longer resolves are skipped.
func ComputeStats(bookings []BookingWithDetails) []CourseStat {
	stats := make([]CourseStat, 0)
	index := make(map[int64]int)
	for _, b := range bookings {
		if b.Course == nil {
			continue
		}
		if i, ok := index[b.CourseID]; ok {
			stats[i].Count++
			continue
		}
		index[b.CourseID] = len(stats)
		stats = append(stats, CourseStat{CourseID: b.CourseID, CourseName: b.Course.Name, Count: 1})
	}
	return stats
}
