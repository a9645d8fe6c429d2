package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"yogaslot/internal/apperr"
	"yogaslot/internal/logger"
	"yogaslot/internal/metrics"
	"yogaslot/internal/state"
	"yogaslot/internal/user"
)

// TokenIssuer mints the bearer token persisted with a logged-in session.
type TokenIssuer interface {
	Issue(userID int64, email, role string) (string, error)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*user.User, error)
	Register(ctx context.Context, req RegisterRequest) (*user.User, error)
	LoadFromStorage(ctx context.Context)
	Logout(ctx context.Context) error
	ForceLogout()
	UpdateProfile(ctx context.Context, req ProfileRequest) (*user.User, error)
	ClearError()
	ClearSuccessMessage()

	State() State
	Token() string
	CurrentUser() (user.User, bool)
}

type service struct {
	sessionID string
	users     user.Repository
	storage   Storage
	tokens    TokenIssuer
	store     *state.Store[State]
}

func NewService(sessionID string, users user.Repository, storage Storage, tokens TokenIssuer) Service {
	return &service{
		sessionID: sessionID,
		users:     users,
		storage:   storage,
		tokens:    tokens,
		store:     state.NewStore(State{}, reduce),
	}
}

func (s *service) State() State {
	return s.store.State()
}

func (s *service) Token() string {
	return s.store.State().Token
}

func (s *service) CurrentUser() (user.User, bool) {
	st := s.store.State()
	if !st.IsLoggedIn || st.User == nil {
		return user.User{}, false
	}
	return *st.User, true
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*user.User, error) {
	s.store.Dispatch(state.Pending(opLogin))

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.reject(opLogin, err)
	}
	if u.Password != req.Password {
		return nil, s.reject(opLogin, apperr.New(apperr.KindInvalidCredentials, "incorrect password"))
	}

	rec, err := s.persist(ctx, *u)
	if err != nil {
		return nil, s.reject(opLogin, err)
	}
	s.store.Dispatch(state.Fulfilled(opLogin, rec))
	return u, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	s.store.Dispatch(state.Pending(opRegister))

	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		metrics.RecordDuplicate("email")
		return nil, s.reject(opRegister, apperr.New(apperr.KindDuplicateEmail, "email already exists"))
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, s.reject(opRegister, err)
	}

	u, err := s.users.Create(ctx, user.User{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     user.RoleUser,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			metrics.RecordDuplicate("email")
			err = apperr.New(apperr.KindDuplicateEmail, "email already exists")
		}
		return nil, s.reject(opRegister, err)
	}

	rec, err := s.persist(ctx, *u)
	if err != nil {
		return nil, s.reject(opRegister, err)
	}
	s.store.Dispatch(state.Fulfilled(opRegister, rec))
	return u, nil
}

// LoadFromStorage rehydrates a persisted session. A missing or unreadable
// record leaves the session logged out without reporting an error.
func (s *service) LoadFromStorage(ctx context.Context) {
	s.store.Dispatch(state.Pending(opLoad))

	data, err := s.storage.Get(ctx, s.sessionID)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			logger.Warn("failed to read session record", "session", s.sessionID, "error", err)
		}
		s.store.Dispatch(state.Rejected(opLoad, err))
		return
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.store.Dispatch(state.Rejected(opLoad, fmt.Errorf("malformed session record: %w", err)))
		return
	}
	if rec.User.ID == 0 {
		s.store.Dispatch(state.Rejected(opLoad, errors.New("session record without user")))
		return
	}
	s.store.Dispatch(state.Fulfilled(opLoad, rec))
}

func (s *service) Logout(ctx context.Context) error {
	err := s.storage.Delete(ctx, s.sessionID)
	s.store.Dispatch(state.Action{Type: actionLogout})
	return err
}

// ForceLogout ends the session after the document service rejected its
// token.
func (s *service) ForceLogout() {
	if err := s.storage.Delete(context.Background(), s.sessionID); err != nil {
		logger.Warn("failed to clear session record", "session", s.sessionID, "error", err)
	}
	s.store.Dispatch(state.Action{Type: actionForceLogout})
}

func (s *service) UpdateProfile(ctx context.Context, req ProfileRequest) (*user.User, error) {
	current, ok := s.CurrentUser()
	if !ok {
		return nil, apperr.New(apperr.KindUnauthorized, "login required")
	}

	s.store.Dispatch(state.Pending(opProfile))
	u, err := s.users.Update(ctx, current.ID, map[string]interface{}{
		"fullName": req.FullName,
		"phone":    req.Phone,
	})
	if err != nil {
		return nil, s.reject(opProfile, err)
	}

	if err := s.save(ctx, Record{User: *u, Token: s.Token()}); err != nil {
		return nil, s.reject(opProfile, err)
	}
	s.store.Dispatch(state.Fulfilled(opProfile, *u))
	return u, nil
}

func (s *service) ClearError() {
	s.store.Dispatch(state.Action{Type: actionClearError})
}

func (s *service) ClearSuccessMessage() {
	s.store.Dispatch(state.Action{Type: actionClearSuccess})
}

func (s *service) persist(ctx context.Context, u user.User) (Record, error) {
	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return Record{}, apperr.Wrap(apperr.KindRequestFailed, "failed to issue session token", err)
	}
	rec := Record{User: u, Token: token}
	return rec, s.save(ctx, rec)
}

func (s *service) save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.sessionID, data); err != nil {
		return apperr.Wrap(apperr.KindRequestFailed, "failed to persist session", err)
	}
	return nil
}

func (s *service) reject(op string, err error) error {
	s.store.Dispatch(state.Rejected(op, err))
	return err
}
