package booking

import (
	"context"
	"errors"
	"time"

	"yogaslot/internal/apperr"
	"yogaslot/internal/email"
	"yogaslot/internal/logger"
	"yogaslot/internal/metrics"
	"yogaslot/internal/state"
	"yogaslot/internal/user"
	"yogaslot/internal/validation"
)

const msgDuplicate = "you have already booked this class at this time"

// UserFinder resolves the member behind an email address.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// Notifier queues booking emails. *email.Service satisfies it.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name string, b email.Booking) error
	SendCancellation(ctx context.Context, to, name string, b email.Booking) error
}

type Service interface {
	Create(ctx context.Context, userID int64, req CreateRequest) (*Booking, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Booking, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]Booking, error)
	ListAllExpanded(ctx context.Context) ([]BookingWithDetails, error)
	Filter(ctx context.Context, f Filter) ([]BookingWithDetails, error)
	Stats(ctx context.Context) ([]CourseStat, error)
	ClearError()
	ClearUserBookings()
	State() State
}

type service struct {
	repo     Repository
	users    UserFinder
	notifier Notifier
	store    *state.Store[State]
	now      func() time.Time
}

// NewService wires the booking workflow. notifier may be nil.
func NewService(repo Repository, users UserFinder, notifier Notifier) Service {
	return &service{
		repo:     repo,
		users:    users,
		notifier: notifier,
		store:    state.NewStore(State{}, reduce),
		now:      time.Now,
	}
}

func (s *service) State() State {
	return s.store.State()
}

func (s *service) Create(ctx context.Context, userID int64, req CreateRequest) (*Booking, error) {
	s.store.Dispatch(state.Pending(opCreate))
	if err := validateSlot(req.BookingDate, req.BookingTime); err != nil {
		return nil, s.reject(opCreate, err)
	}

	slot := Slot{UserID: userID, CourseID: req.CourseID, Date: req.BookingDate, Time: req.BookingTime}
	if err := s.ensureFree(ctx, slot, 0); err != nil {
		return nil, s.reject(opCreate, err)
	}

	created, err := s.repo.Create(ctx, Booking{
		UserID:      userID,
		CourseID:    req.CourseID,
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
		Status:      StatusPending,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, s.reject(opCreate, conflictAsDuplicate(err))
	}

	s.store.Dispatch(state.Fulfilled(opCreate, *created))
	metrics.RecordBooking(created.Status)
	s.notify(ctx, created.ID, email.TypeConfirmation)
	return created, nil
}

// Update applies a partial change. Moving a booking to another date or time
// re-runs the duplicate check against the resulting slot.
func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Booking, error) {
	s.store.Dispatch(state.Pending(opUpdate))

	if req.BookingDate != nil || req.BookingTime != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, s.reject(opUpdate, err)
		}
		slot := current.Slot()
		if req.BookingDate != nil {
			slot.Date = *req.BookingDate
		}
		if req.BookingTime != nil {
			slot.Time = *req.BookingTime
		}
		if err := validateSlot(slot.Date, slot.Time); err != nil {
			return nil, s.reject(opUpdate, err)
		}
		if slot != current.Slot() {
			if err := s.ensureFree(ctx, slot, id); err != nil {
				return nil, s.reject(opUpdate, err)
			}
		}
	}

	updated, err := s.repo.Update(ctx, id, req.Fields())
	if err != nil {
		return nil, s.reject(opUpdate, conflictAsDuplicate(err))
	}

	s.store.Dispatch(state.Fulfilled(opUpdate, *updated))
	if req.Status != nil {
		metrics.RecordBooking(*req.Status)
		if *req.Status == StatusCancelled {
			s.notify(ctx, id, email.TypeCancellation)
		}
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.store.Dispatch(state.Pending(opDelete))
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.reject(opDelete, err)
	}
	s.store.Dispatch(state.Fulfilled(opDelete, id))
	metrics.RecordBookingDeletion()
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListUserBookings(ctx context.Context, userID int64) ([]Booking, error) {
	s.store.Dispatch(state.Pending(opFetchUser))
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.reject(opFetchUser, err)
	}
	return s.store.Dispatch(state.Fulfilled(opFetchUser, bookings)).UserBookings, nil
}

func (s *service) ListAllExpanded(ctx context.Context) ([]BookingWithDetails, error) {
	s.store.Dispatch(state.Pending(opFetchAll))
	bookings, err := s.repo.ListExpanded(ctx, Query{})
	if err != nil {
		return nil, s.reject(opFetchAll, err)
	}
	return s.store.Dispatch(state.Fulfilled(opFetchAll, bookings)).Bookings, nil
}

// Filter replaces the admin list with the bookings matching every set
// criterion. An email that belongs to nobody does not narrow the result.
func (s *service) Filter(ctx context.Context, f Filter) ([]BookingWithDetails, error) {
	s.store.Dispatch(state.Pending(opFilter))

	q := Query{CourseID: f.CourseID, BookingDate: f.BookingDate, Status: f.Status}
	if f.Email != "" {
		u, err := s.users.FindByEmail(ctx, f.Email)
		switch {
		case err == nil:
			q.UserID = u.ID
		case !errors.Is(err, apperr.ErrNotFound):
			return nil, s.reject(opFilter, err)
		}
	}

	bookings, err := s.repo.ListExpanded(ctx, q)
	if err != nil {
		return nil, s.reject(opFilter, err)
	}
	return s.store.Dispatch(state.Fulfilled(opFilter, bookings)).Bookings, nil
}

func (s *service) Stats(ctx context.Context) ([]CourseStat, error) {
	s.store.Dispatch(state.Pending(opStats))
	bookings, err := s.repo.ListExpanded(ctx, Query{})
	if err != nil {
		return nil, s.reject(opStats, err)
	}
	return s.store.Dispatch(state.Fulfilled(opStats, ComputeStats(bookings))).Stats, nil
}

func (s *service) ClearError() {
	s.store.Dispatch(state.Action{Type: actionClearError})
}

func (s *service) ClearUserBookings() {
	s.store.Dispatch(state.Action{Type: actionClearUserBookings})
}

// ensureFree fails with DuplicateBooking when another booking, other than
// except, already holds slot.
func (s *service) ensureFree(ctx context.Context, slot Slot, except int64) error {
	existing, err := s.repo.FindBySlot(ctx, slot)
	if err != nil {
		return err
	}
	for _, b := range existing {
		if b.ID != except {
			metrics.RecordDuplicate("booking")
			return apperr.New(apperr.KindDuplicateBooking, msgDuplicate)
		}
	}
	return nil
}

func (s *service) notify(ctx context.Context, id int64, kind string) {
	if s.notifier == nil {
		return
	}
	b, err := s.repo.FindExpanded(ctx, id)
	if err != nil || b.User == nil {
		logger.Warn("booking email skipped", "booking", id, "type", kind, "error", err)
		return
	}

	details := email.Booking{Date: b.BookingDate, Time: b.BookingTime}
	if b.Course != nil {
		details.Course = b.Course.Name
	}

	switch kind {
	case email.TypeConfirmation:
		err = s.notifier.SendBookingConfirmation(ctx, b.User.Email, b.User.FullName, details)
	case email.TypeCancellation:
		err = s.notifier.SendCancellation(ctx, b.User.Email, b.User.FullName, details)
	}
	if err != nil {
		logger.Warn("failed to queue booking email", "booking", id, "type", kind, "error", err)
	}
}

func (s *service) reject(op string, err error) error {
	s.store.Dispatch(state.Rejected(op, err))
	return err
}

func validateSlot(date, slotTime string) error {
	var fields []apperr.FieldError
	if !validation.IsDate(date) {
		fields = append(fields, apperr.FieldError{Field: "bookingDate", Kind: apperr.KindInvalid, Message: "bookingDate must be a date in YYYY-MM-DD format"})
	}
	if !validation.IsSlot(slotTime) {
		fields = append(fields, apperr.FieldError{Field: "bookingTime", Kind: apperr.KindInvalid, Message: "bookingTime must be an hourly slot between 06:00 and 21:00"})
	}
	if len(fields) > 0 {
		return apperr.Fields(fields...)
	}
	return nil
}

func conflictAsDuplicate(err error) error {
	if errors.Is(err, apperr.ErrConflict) {
		metrics.RecordDuplicate("booking")
		return apperr.New(apperr.KindDuplicateBooking, msgDuplicate)
	}
	return err
}
