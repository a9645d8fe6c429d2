package course

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) courses(args mock.Arguments) ([]Course, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Course), args.Error(1)
}

func (m *MockRepository) course(args mock.Arguments) (*Course, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Course), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Course, error) {
	return m.courses(m.Called(ctx))
}

func (m *MockRepository) Search(ctx context.Context, q string) ([]Course, error) {
	return m.courses(m.Called(ctx, q))
}

func (m *MockRepository) ListByType(ctx context.Context, courseType string) ([]Course, error) {
	return m.courses(m.Called(ctx, courseType))
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Course, error) {
	return m.course(m.Called(ctx, id))
}

func (m *MockRepository) Create(ctx context.Context, c Course) (*Course, error) {
	return m.course(m.Called(ctx, c))
}

func (m *MockRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*Course, error) {
	return m.course(m.Called(ctx, id, fields))
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var catalog = []Course{
	{ID: 1, Name: "Zumba", Type: "Dance", Price: 100000, Description: "Latin"},
	{ID: 2, Name: "Hatha Yoga", Type: "Yoga", Price: 150000, Description: "Cơ bản"},
	{ID: 3, Name: "Boxing", Type: "Martial Arts", Price: 180000, Description: "Đấm yoga-style"},
}

func TestService_FetchSortsByName(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(catalog, nil)
	svc := NewService(repo)

	courses, err := svc.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Boxing", "Hatha Yoga", "Zumba"}, names(courses))
	assert.Equal(t, SortByName, svc.State().SortedBy)
}

func TestService_SearchFiltersInMemory(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Search", mock.Anything, "yoga").Return(append(catalog, Course{ID: 4, Name: "Sauna", Instructor: "yoga master"}), nil)
	svc := NewService(repo)

	courses, err := svc.Search(context.Background(), "  yoga ")

	require.NoError(t, err)
	assert.Equal(t, []string{"Boxing", "Hatha Yoga"}, names(courses))
	assert.Len(t, svc.State().Courses, 2)
}

func TestService_BlankSearchFetches(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(catalog, nil)
	svc := NewService(repo)

	courses, err := svc.Search(context.Background(), " ")

	require.NoError(t, err)
	assert.Len(t, courses, 3)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestService_CreateUpdateResort(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(catalog, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c Course) bool { return c.Name == "Ashtanga" })).
		Return(&Course{ID: 5, Name: "Ashtanga", Type: "Yoga"}, nil)
	repo.On("Update", mock.Anything, int64(1), map[string]interface{}{"name": "Aerobic"}).
		Return(&Course{ID: 1, Name: "Aerobic", Type: "Dance"}, nil)
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Fetch(ctx)
	require.NoError(t, err)
	_, err = svc.Create(ctx, Form{Name: "Ashtanga", Type: "Yoga", Level: "Advanced", Duration: 60, MaxStudents: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ashtanga", "Boxing", "Hatha Yoga", "Zumba"}, names(svc.State().Courses))

	svc.SortBy(SortByPrice)
	assert.Equal(t, SortByPrice, svc.State().SortedBy)

	name := "Aerobic"
	_, err = svc.Update(ctx, 1, Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, []string{"Aerobic", "Ashtanga", "Boxing", "Hatha Yoga"}, names(svc.State().Courses))
	assert.Equal(t, SortByName, svc.State().SortedBy)
}

func TestService_SortByPrice(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(catalog, nil)
	svc := NewService(repo)
	_, _ = svc.Fetch(context.Background())

	out := svc.SortBy(SortByPrice)

	assert.Equal(t, []string{"Zumba", "Hatha Yoga", "Boxing"}, names(out))
}

func TestService_SortByIsIdempotent(t *testing.T) {
	ties := []Course{
		{ID: 1, Name: "Yin Yoga", Type: "Yoga", Price: 120000},
		{ID: 2, Name: "Ashtanga", Type: "Yoga", Price: 120000},
		{ID: 3, Name: "Boxing", Type: "Martial Arts", Price: 90000},
		{ID: 4, Name: "Zumba", Type: "Dance", Price: 120000},
	}
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(ties, nil)
	svc := NewService(repo)
	_, err := svc.Fetch(context.Background())
	require.NoError(t, err)

	first := svc.SortBy(SortByPrice)
	second := svc.SortBy(SortByPrice)

	assert.Equal(t, []string{"Boxing", "Ashtanga", "Yin Yoga", "Zumba"}, names(first))
	assert.Equal(t, first, second)

	for _, key := range []SortKey{SortByName, SortByType} {
		once := svc.SortBy(key)
		assert.Equal(t, once, svc.SortBy(key), "sort key %s", key)
	}
}

func TestService_DeleteAndErrors(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(catalog, nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(nil)
	repo.On("Delete", mock.Anything, int64(7)).Return(errors.New("boom"))
	svc := NewService(repo)
	ctx := context.Background()
	_, _ = svc.Fetch(ctx)

	require.NoError(t, svc.Delete(ctx, 2))
	assert.Equal(t, []string{"Boxing", "Zumba"}, names(svc.State().Courses))

	assert.Error(t, svc.Delete(ctx, 7))
	assert.Equal(t, "boom", svc.State().Error)
	svc.ClearError()
	assert.Empty(t, svc.State().Error)
}

func TestService_ListByType(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByType", mock.Anything, "Yoga").Return([]Course{catalog[1]}, nil)
	svc := NewService(repo)

	courses, err := svc.ListByType(context.Background(), "Yoga")

	require.NoError(t, err)
	assert.Equal(t, []string{"Hatha Yoga"}, names(courses))
}
