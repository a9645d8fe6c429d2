package offering

import (
	"context"

	"yogaslot/internal/state"
)

type Service interface {
	Fetch(ctx context.Context) ([]Offering, error)
	Get(ctx context.Context, id int64) (*Offering, error)
	Create(ctx context.Context, form Form) (*Offering, error)
	Update(ctx context.Context, id int64, patch Patch) (*Offering, error)
	Delete(ctx context.Context, id int64) error
	ClearError()
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

func (s *service) Fetch(ctx context.Context) ([]Offering, error) {
	s.store.Dispatch(state.Pending(opFetch))
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.reject(opFetch, err)
	}
	return s.store.Dispatch(state.Fulfilled(opFetch, out)).Offerings, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Offering, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, form Form) (*Offering, error) {
	s.store.Dispatch(state.Pending(opCreate))
	created, err := s.repo.Create(ctx, Offering{Name: form.Name, Description: form.Description, Icon: form.Icon})
	if err != nil {
		return nil, s.reject(opCreate, err)
	}
	s.store.Dispatch(state.Fulfilled(opCreate, *created))
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, patch Patch) (*Offering, error) {
	s.store.Dispatch(state.Pending(opUpdate))
	updated, err := s.repo.Update(ctx, id, patch.Fields())
	if err != nil {
		return nil, s.reject(opUpdate, err)
	}
	s.store.Dispatch(state.Fulfilled(opUpdate, *updated))
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.store.Dispatch(state.Pending(opDelete))
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.reject(opDelete, err)
	}
	s.store.Dispatch(state.Fulfilled(opDelete, id))
	return nil
}

func (s *service) ClearError() {
	s.store.Dispatch(state.Action{Type: actionClearError})
}

func (s *service) reject(op string, err error) error {
	s.store.Dispatch(state.Rejected(op, err))
	return err
}
