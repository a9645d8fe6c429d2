// Package jobs runs the scheduled background work of the booking app.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"yogaslot/internal/booking"
	"yogaslot/internal/email"
	"yogaslot/internal/logger"
	"yogaslot/internal/validation"
)

const runTimeout = 2 * time.Minute

type BookingLister interface {
	ListExpanded(ctx context.Context, q booking.Query) ([]booking.BookingWithDetails, error)
}

type Reminder interface {
	SendReminder(ctx context.Context, to, name string, b email.Booking) error
}

// ReminderJob emails every member holding a booking for tomorrow.
type ReminderJob struct {
	bookings BookingLister
	mailer   Reminder
	now      func() time.Time
}

func NewReminderJob(bookings BookingLister, mailer Reminder) *ReminderJob {
	return &ReminderJob{bookings: bookings, mailer: mailer, now: time.Now}
}

// Run queues the reminders and reports how many were queued. Cancelled
// bookings and bookings whose member is gone are skipped.
func (j *ReminderJob) Run(ctx context.Context) (int, error) {
	tomorrow := j.now().AddDate(0, 0, 1).Format(validation.DateLayout)
	logger.Info("Running job: booking reminders", "date", tomorrow)

	bookings, err := j.bookings.ListExpanded(ctx, booking.Query{BookingDate: tomorrow})
	if err != nil {
		logger.Error("failed to list bookings for reminders", "date", tomorrow, "error", err)
		return 0, err
	}

	sent := 0
	for _, b := range bookings {
		if b.Status == booking.StatusCancelled || b.User == nil {
			continue
		}
		details := email.Booking{Date: b.BookingDate, Time: b.BookingTime}
		if b.Course != nil {
			details.Course = b.Course.Name
		}
		if err := j.mailer.SendReminder(ctx, b.User.Email, b.User.FullName, details); err != nil {
			logger.Warn("failed to queue reminder", "booking", b.ID, "error", err)
			continue
		}
		sent++
	}

	logger.Info("booking reminders queued", "date", tomorrow, "count", sent)
	return sent, nil
}

type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers job on the standard five-field cron spec.
func NewScheduler(spec string, job *ReminderJob) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		job.Run(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Cron job for booking reminders scheduled")
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
