package jobs

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yogaslot/internal/booking"
	"yogaslot/internal/email"
	"yogaslot/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListExpanded(ctx context.Context, q booking.Query) ([]booking.BookingWithDetails, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.BookingWithDetails), args.Error(1)
}

type MockReminder struct {
	mock.Mock
}

func (m *MockReminder) SendReminder(ctx context.Context, to, name string, b email.Booking) error {
	return m.Called(ctx, to, name, b).Error(0)
}

func fixedJob(l BookingLister, r Reminder) *ReminderJob {
	j := NewReminderJob(l, r)
	j.now = func() time.Time { return time.Date(2025, 1, 9, 18, 0, 0, 0, time.UTC) }
	return j
}

func TestReminderJob_Run(t *testing.T) {
	lister := new(MockLister)
	reminder := new(MockReminder)
	lan := &booking.UserRef{ID: 2, FullName: "Nguyễn Thị Lan", Email: "lan.nguyen@example.com"}

	lister.On("ListExpanded", mock.Anything, booking.Query{BookingDate: "2025-01-10"}).Return([]booking.BookingWithDetails{
		{Booking: booking.Booking{ID: 1, BookingDate: "2025-01-10", BookingTime: "06:00", Status: booking.StatusConfirmed}, User: lan, Course: &booking.CourseRef{Name: "Hatha Yoga"}},
		{Booking: booking.Booking{ID: 2, BookingDate: "2025-01-10", BookingTime: "08:00", Status: booking.StatusCancelled}, User: lan},
		{Booking: booking.Booking{ID: 3, BookingDate: "2025-01-10", BookingTime: "09:00", Status: booking.StatusPending}},
		{Booking: booking.Booking{ID: 4, BookingDate: "2025-01-10", BookingTime: "18:00", Status: booking.StatusPending}, User: lan},
	}, nil)
	reminder.On("SendReminder", mock.Anything, "lan.nguyen@example.com", "Nguyễn Thị Lan",
		email.Booking{Course: "Hatha Yoga", Date: "2025-01-10", Time: "06:00"}).Return(nil)
	reminder.On("SendReminder", mock.Anything, "lan.nguyen@example.com", "Nguyễn Thị Lan",
		email.Booking{Date: "2025-01-10", Time: "18:00"}).Return(errors.New("redis down"))

	sent, err := fixedJob(lister, reminder).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	reminder.AssertNumberOfCalls(t, "SendReminder", 2)
}

func TestReminderJob_ListFailure(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListExpanded", mock.Anything, mock.Anything).Return(nil, errors.New("unreachable"))

	sent, err := fixedJob(lister, new(MockReminder)).Run(context.Background())

	assert.Error(t, err)
	assert.Zero(t, sent)
}

func TestNewScheduler(t *testing.T) {
	job := fixedJob(new(MockLister), new(MockReminder))

	_, err := NewScheduler("not a spec", job)
	assert.Error(t, err)

	s, err := NewScheduler("0 18 * * *", job)
	require.NoError(t, err)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
