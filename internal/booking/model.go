package booking

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	CourseID    int64  `json:"courseId"`
	BookingDate string `json:"bookingDate"`
	BookingTime string `json:"bookingTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	Notes       string `json:"notes,omitempty"`
}

// Slot is the tuple a member may hold at most one booking for.
type Slot struct {
	UserID   int64
	CourseID int64
	Date     string
	Time     string
}

func (b Booking) Slot() Slot {
	return Slot{UserID: b.UserID, CourseID: b.CourseID, Date: b.BookingDate, Time: b.BookingTime}
}

type UserRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type CourseRef struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// BookingWithDetails is a booking with its member and course embedded.
// Either reference is nil when the document it points at is gone.
type BookingWithDetails struct {
	Booking
	User   *UserRef   `json:"user,omitempty"`
	Course *CourseRef `json:"course,omitempty"`
}

type CourseStat struct {
	CourseID   int64  `json:"courseId"`
	CourseName string `json:"courseName"`
	Count      int    `json:"count"`
}

type CreateRequest struct {
	CourseID    int64  `json:"courseId" binding:"required,gt=0"`
	BookingDate string `json:"bookingDate" binding:"required,date"`
	BookingTime string `json:"bookingTime" binding:"required,slot_time"`
	Notes       string `json:"notes" binding:"max=500"`
}

type UpdateRequest struct {
	BookingDate *string `json:"bookingDate" binding:"omitempty,date"`
	BookingTime *string `json:"bookingTime" binding:"omitempty,slot_time"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

func (r UpdateRequest) Fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.BookingDate != nil {
		out["bookingDate"] = *r.BookingDate
	}
	if r.BookingTime != nil {
		out["bookingTime"] = *r.BookingTime
	}
	if r.Status != nil {
		out["status"] = *r.Status
	}
	return out
}

// Filter narrows the admin booking list. Zero values are ignored.
type Filter struct {
	Email       string `form:"email"`
	CourseID    int64  `form:"courseId" binding:"omitempty,gt=0"`
	BookingDate string `form:"bookingDate" binding:"omitempty,date"`
	Status      string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// Query is a Filter with the email already resolved to a user id.
type Query struct {
	UserID      int64
	CourseID    int64
	BookingDate string
	Status      string
}

type SlotsResponse struct {
	Slots []string `json:"slots"`
}
