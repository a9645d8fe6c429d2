// Package app composes the workflows serving one browser session.
package app

import (
	"context"
	"time"

	"yogaslot/internal/booking"
	"yogaslot/internal/client"
	"yogaslot/internal/course"
	"yogaslot/internal/offering"
	"yogaslot/internal/session"
	"yogaslot/internal/user"
)

// Deps are shared by every session's App.
type Deps struct {
	DocstoreURL string
	Timeout     time.Duration
	Storage     session.Storage
	Tokens      session.TokenIssuer
	Notifier    booking.Notifier
}

type App struct {
	ID        string
	Session   session.Service
	Users     user.Service
	Courses   course.Service
	Bookings  booking.Service
	Offerings offering.Service
}

// New builds the App for session id. Its document-service client sends the
// session token and logs the session out when the token is refused.
func New(id string, deps Deps) *App {
	c := client.New(deps.DocstoreURL, deps.Timeout)
	users := user.NewRepository(c)
	sess := session.NewService(id, users, deps.Storage, deps.Tokens)
	c.SetAuth(sess.Token, sess.ForceLogout)

	return &App{
		ID:        id,
		Session:   sess,
		Users:     user.NewService(users),
		Courses:   course.NewService(course.NewRepository(c)),
		Bookings:  booking.NewService(booking.NewRepository(c), users, deps.Notifier),
		Offerings: offering.NewService(offering.NewRepository(c)),
	}
}

// Factory creates the App for a session not held in memory. With rehydrate
// set it restores the persisted login of id.
type Factory func(ctx context.Context, id string, rehydrate bool) *App

func NewFactory(deps Deps) Factory {
	return func(ctx context.Context, id string, rehydrate bool) *App {
		a := New(id, deps)
		if rehydrate {
			a.Session.LoadFromStorage(ctx)
		}
		return a
	}
}

// LoggedIn reports whether the App's session holds a user.
func (a *App) LoggedIn() bool {
	_, ok := a.Session.CurrentUser()
	return ok
}
