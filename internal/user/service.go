package user

import (
	"context"
	"errors"
	"strings"

	"yogaslot/internal/apperr"
	"yogaslot/internal/metrics"
	"yogaslot/internal/state"
)

type Service interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, form Form) (*User, error)
	Update(ctx context.Context, id int64, form Form) (*User, error)
	Delete(ctx context.Context, id int64) error
	State() State
}

type service struct {
	repo  Repository
	store *state.Store[State]
}

func NewService(repo Repository) Service {
	return &service{
		repo:  repo,
		store: state.NewStore(State{}, reduce),
	}
}

func (s *service) State() State {
	return s.store.State()
}

func (s *service) List(ctx context.Context) ([]User, error) {
	s.store.Dispatch(state.Pending(opFetch))
	users, err := s.repo.List(ctx)
	if err != nil {
		s.store.Dispatch(state.Rejected(opFetch, err))
		return nil, err
	}
	s.store.Dispatch(state.Fulfilled(opFetch, users))
	return users, nil
}

func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) Create(ctx context.Context, form Form) (*User, error) {
	if form.Password == "" {
		return nil, apperr.Fields(apperr.FieldError{Field: "password", Kind: apperr.KindInvalid, Message: "password is required"})
	}
	users, err := s.held(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckDuplicates(users, form.Email, form.Phone, 0); err != nil {
		recordDuplicates(err)
		return nil, err
	}

	s.store.Dispatch(state.Pending(opCreate))
	created, err := s.repo.Create(ctx, User{
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
		Phone:    form.Phone,
		Role:     RoleUser,
	})
	if err != nil {
		err = conflictAsDuplicateEmail(err)
		s.store.Dispatch(state.Rejected(opCreate, err))
		return nil, err
	}
	s.store.Dispatch(state.Fulfilled(opCreate, *created))
	return created, nil
}

// Update edits profile fields only. The stored role never changes and an
// empty password keeps the current one.
func (s *service) Update(ctx context.Context, id int64, form Form) (*User, error) {
	users, err := s.held(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckDuplicates(users, form.Email, form.Phone, id); err != nil {
		recordDuplicates(err)
		return nil, err
	}

	patch := map[string]interface{}{
		"fullName": form.FullName,
		"email":    form.Email,
		"phone":    form.Phone,
	}
	if form.Password != "" {
		patch["password"] = form.Password
	}

	s.store.Dispatch(state.Pending(opUpdate))
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		err = conflictAsDuplicateEmail(err)
		s.store.Dispatch(state.Rejected(opUpdate, err))
		return nil, err
	}
	s.store.Dispatch(state.Fulfilled(opUpdate, *updated))
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.store.Dispatch(state.Pending(opDelete))
	if err := s.repo.Delete(ctx, id); err != nil {
		s.store.Dispatch(state.Rejected(opDelete, err))
		return err
	}
	s.store.Dispatch(state.Fulfilled(opDelete, id))
	return nil
}

// held returns the user list the duplicate guard scans, fetching it once if
// the console has not loaded it yet.
func (s *service) held(ctx context.Context) ([]User, error) {
	if st := s.store.State(); st.Loaded {
		return st.Users, nil
	}
	return s.List(ctx)
}

// CheckDuplicates scans users for a case-insensitive email match or an exact
// non-empty phone match, ignoring the user with excludeID.
func CheckDuplicates(users []User, email, phone string, excludeID int64) error {
	var fields []apperr.FieldError
	emailTaken, phoneTaken := false, false

	for _, u := range users {
		if excludeID != 0 && u.ID == excludeID {
			continue
		}
		if !emailTaken && strings.EqualFold(u.Email, email) {
			emailTaken = true
		}
		if !phoneTaken && phone != "" && u.Phone == phone {
			phoneTaken = true
		}
	}

	if emailTaken {
		fields = append(fields, apperr.FieldError{Field: "email", Kind: apperr.KindDuplicateEmail, Message: "This email is already used by another user"})
	}
	if phoneTaken {
		fields = append(fields, apperr.FieldError{Field: "phone", Kind: apperr.KindDuplicatePhone, Message: "This phone number is already used by another user"})
	}
	if len(fields) == 0 {
		return nil
	}
	return apperr.Fields(fields...)
}

func recordDuplicates(err error) {
	for _, f := range apperr.FieldsOf(err) {
		switch f.Kind {
		case apperr.KindDuplicateEmail:
			metrics.RecordDuplicate("email")
		case apperr.KindDuplicatePhone:
			metrics.RecordDuplicate("phone")
		}
	}
}

func conflictAsDuplicateEmail(err error) error {
	if errors.Is(err, apperr.ErrConflict) {
		metrics.RecordDuplicate("email")
		return apperr.Fields(apperr.FieldError{Field: "email", Kind: apperr.KindDuplicateEmail, Message: "This email is already used by another user"})
	}
	return err
}
