package email

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaslot/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	s := New(rdb, Config{
		From:     "noreply@yogaslot.vn",
		FromName: "YogaSlot",
		SMTPHost: "smtp.test.com",
		SMTPPort: "587",
		SMTPUser: "test@example.com",
		SMTPPass: "password",
	})
	s.retryDelay = 0
	return s
}

var class = Booking{Course: "Hatha Yoga", Date: "2025-01-10", Time: "08:00"}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)

	err := newTestService(db).Send(context.Background(), "user@example.com", "User", "Hello", "Test body")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingEmails(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		send    func(*Service) error
	}{
		{"confirmation", `"type":"confirmation".*Booking Received - Hatha Yoga`, func(s *Service) error {
			return s.SendBookingConfirmation(context.Background(), "lan@example.com", "Lan", class)
		}},
		{"reminder", `"type":"reminder".*Reminder: Hatha Yoga Tomorrow`, func(s *Service) error {
			return s.SendReminder(context.Background(), "lan@example.com", "Lan", class)
		}},
		{"cancellation", `"type":"cancellation".*Booking Cancelled - Hatha Yoga`, func(s *Service) error {
			return s.SendCancellation(context.Background(), "lan@example.com", "Lan", class)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			mock.Regexp().ExpectLPush("emails", tt.pattern).SetVal(1)

			assert.NoError(t, tt.send(newTestService(db)))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectLLen("emails").SetVal(5)

	assert.Equal(t, int64(5), newTestService(db).QueueLength(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendError(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(assert.AnError)

	err := newTestService(db).Send(context.Background(), "user@example.com", "User", "Hello", "Test body")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func queued(t *testing.T, job EmailJob) string {
	data, err := json.Marshal(job)
	require.NoError(t, err)
	return string(data)
}

func TestProcessNext_Delivers(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", queued(t, EmailJob{Type: TypeReminder, To: "lan@example.com"})})

	svc := newTestService(db)
	var got EmailJob
	svc.deliver = func(job EmailJob) error {
		got = job
		return nil
	}

	svc.processNext(context.Background())

	assert.Equal(t, "lan@example.com", got.To)
	assert.Equal(t, 1, got.Tries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_Requeues(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", queued(t, EmailJob{To: "lan@example.com", Tries: 1})})
	mock.Regexp().ExpectLPush("emails", `"tries":2`).SetVal(1)

	svc := newTestService(db)
	svc.deliver = func(EmailJob) error { return errors.New("smtp down") }

	svc.processNext(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_GivesUp(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", queued(t, EmailJob{To: "lan@example.com", Tries: 2})})
	mock.Regexp().ExpectLPush("emails:failed", `smtp down`).SetVal(1)

	svc := newTestService(db)
	svc.deliver = func(EmailJob) error { return errors.New("smtp down") }

	svc.processNext(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}
