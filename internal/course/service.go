package course

import (
	"context"
	"strings"

	"yogaslot/internal/state"
)

type Service interface {
	Fetch(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id int64) (*Course, error)
	Create(ctx context.Context, form Form) (*Course, error)
	Update(ctx context.Context, id int64, patch Patch) (*Course, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string) ([]Course, error)
	ListByType(ctx context.Context, courseType string) ([]Course, error)
	SortBy(key SortKey) []Course
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

// Fetch loads the catalog sorted by name.
func (s *service) Fetch(ctx context.Context) ([]Course, error) {
	s.store.Dispatch(state.Pending(opFetch))
	courses, err := s.repo.List(ctx)
	if err != nil {
		s.store.Dispatch(state.Rejected(opFetch, err))
		return nil, err
	}
	return s.store.Dispatch(state.Fulfilled(opFetch, courses)).Courses, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, form Form) (*Course, error) {
	s.store.Dispatch(state.Pending(opCreate))
	created, err := s.repo.Create(ctx, form.Course())
	if err != nil {
		s.store.Dispatch(state.Rejected(opCreate, err))
		return nil, err
	}
	s.store.Dispatch(state.Fulfilled(opCreate, *created))
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, patch Patch) (*Course, error) {
	s.store.Dispatch(state.Pending(opUpdate))
	updated, err := s.repo.Update(ctx, id, patch.Fields())
	if err != nil {
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

// Search asks the document service for q and keeps only courses whose name,
// type or description contain it. A blank query is a plain fetch.
func (s *service) Search(ctx context.Context, q string) ([]Course, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.Fetch(ctx)
	}

	s.store.Dispatch(state.Pending(opSearch))
	found, err := s.repo.Search(ctx, q)
	if err != nil {
		s.store.Dispatch(state.Rejected(opSearch, err))
		return nil, err
	}

	matched := make([]Course, 0, len(found))
	for _, c := range found {
		if Matches(c, q) {
			matched = append(matched, c)
		}
	}
	return s.store.Dispatch(state.Fulfilled(opSearch, matched)).Courses, nil
}

func (s *service) ListByType(ctx context.Context, courseType string) ([]Course, error) {
	s.store.Dispatch(state.Pending(opFetch))
	courses, err := s.repo.ListByType(ctx, courseType)
	if err != nil {
		s.store.Dispatch(state.Rejected(opFetch, err))
		return nil, err
	}
	return s.store.Dispatch(state.Fulfilled(opFetch, courses)).Courses, nil
}

// SortBy reorders the held catalog.
func (s *service) SortBy(key SortKey) []Course {
	return s.store.Dispatch(state.Action{Type: actionSort, Payload: key}).Courses
}

func (s *service) ClearError() {
	s.store.Dispatch(state.Action{Type: actionClearError})
}
