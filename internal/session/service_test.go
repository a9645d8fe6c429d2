package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yogaslot/internal/apperr"
	"yogaslot/internal/user"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, patch map[string]interface{}) (*user.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type fakeIssuer struct{ err error }

func (f fakeIssuer) Issue(userID int64, email, role string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + email, nil
}

var lan = &user.User{ID: 2, Email: "lan@example.com", Password: "password123", FullName: "Lan", Role: user.RoleUser}

func notFound() error { return apperr.New(apperr.KindNotFound, "email not found") }

func TestService_Login(t *testing.T) {
	tests := []struct {
		name       string
		req        LoginRequest
		setupMock  func(*MockUserRepository)
		expectKind apperr.Kind
	}{
		{
			name: "success",
			req:  LoginRequest{Email: "lan@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "lan@example.com").Return(lan, nil)
			},
		},
		{
			name: "unknown email",
			req:  LoginRequest{Email: "nobody@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, notFound())
			},
			expectKind: apperr.KindNotFound,
		},
		{
			name: "password is case-sensitive",
			req:  LoginRequest{Email: "lan@example.com", Password: "Password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "lan@example.com").Return(lan, nil)
			},
			expectKind: apperr.KindInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			storage := NewMemoryStorage()
			svc := NewService("sid", repo, storage, fakeIssuer{})

			u, err := svc.Login(context.Background(), tt.req)
			st := svc.State()

			if tt.expectKind == "" {
				require.NoError(t, err)
				assert.Equal(t, int64(2), u.ID)
				assert.True(t, st.IsLoggedIn)
				assert.Equal(t, MsgLoginSuccess, st.SuccessMessage)
				assert.Equal(t, "token-lan@example.com", svc.Token())

				data, err := storage.Get(context.Background(), "sid")
				require.NoError(t, err)
				assert.Contains(t, string(data), `"token":"token-lan@example.com"`)
				return
			}

			assert.Equal(t, tt.expectKind, apperr.KindOf(err))
			assert.False(t, st.IsLoggedIn)
			assert.NotEmpty(t, st.Error)
			assert.False(t, st.IsLoading)
			_, err = storage.Get(context.Background(), "sid")
			assert.ErrorIs(t, err, ErrNoRecord)
		})
	}
}

func TestService_FailedLoginKeepsExistingSession(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "lan@example.com").Return(lan, nil)
	svc := NewService("sid", repo, NewMemoryStorage(), fakeIssuer{})
	_, err := svc.Login(context.Background(), LoginRequest{Email: "lan@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "lan@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	st := svc.State()
	assert.True(t, st.IsLoggedIn)
	assert.Equal(t, int64(2), st.User.ID)
}

func TestService_Register(t *testing.T) {
	req := RegisterRequest{FullName: "Hoa", Email: "hoa@example.com", Password: "password1", ConfirmPassword: "password1", Phone: "0933333333"}

	t.Run("success forces role user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "hoa@example.com").Return(nil, notFound())
		repo.On("Create", mock.Anything, user.User{Email: "hoa@example.com", Password: "password1", FullName: "Hoa", Phone: "0933333333", Role: user.RoleUser}).
			Return(&user.User{ID: 5, Email: "hoa@example.com", FullName: "Hoa", Role: user.RoleUser}, nil)
		svc := NewService("sid", repo, NewMemoryStorage(), fakeIssuer{})

		u, err := svc.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, int64(5), u.ID)
		assert.True(t, svc.State().IsLoggedIn)
		assert.Equal(t, MsgRegisterSuccess, svc.State().SuccessMessage)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email leaves session alone", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "hoa@example.com").Return(&user.User{ID: 5}, nil)
		svc := NewService("sid", repo, NewMemoryStorage(), fakeIssuer{})

		_, err := svc.Register(context.Background(), req)

		assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
		assert.False(t, svc.State().IsLoggedIn)
		assert.Nil(t, svc.State().User)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("conflict from document service", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "hoa@example.com").Return(nil, notFound())
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, apperr.New(apperr.KindConflict, "exists"))
		svc := NewService("sid", repo, NewMemoryStorage(), fakeIssuer{})

		_, err := svc.Register(context.Background(), req)

		assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "hoa@example.com").Return(nil, apperr.New(apperr.KindRequestFailed, "down"))
		svc := NewService("sid", repo, NewMemoryStorage(), fakeIssuer{})

		_, err := svc.Register(context.Background(), req)

		assert.ErrorIs(t, err, apperr.ErrRequestFailed)
	})
}

func TestService_LoadFromStorage(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		loggedIn bool
	}{
		{"valid record", `{"user":{"id":2,"email":"lan@example.com","role":"user"},"token":"t"}`, true},
		{"absent record", "", false},
		{"malformed json", `{"user":`, false},
		{"record without user", `{"token":"t"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			if tt.stored != "" {
				require.NoError(t, storage.Set(context.Background(), "sid", []byte(tt.stored)))
			}
			svc := NewService("sid", new(MockUserRepository), storage, fakeIssuer{})

			svc.LoadFromStorage(context.Background())

			st := svc.State()
			assert.Equal(t, tt.loggedIn, st.IsLoggedIn)
			assert.Empty(t, st.Error)
			assert.Empty(t, st.SuccessMessage)
			assert.False(t, st.IsLoading)
		})
	}
}

func TestService_LogoutAndForceLogout(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "lan@example.com").Return(lan, nil)
	storage := NewMemoryStorage()
	svc := NewService("sid", repo, storage, fakeIssuer{})
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "lan@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.State().IsLoggedIn)
	_, err = storage.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNoRecord)

	_, err = svc.Login(ctx, LoginRequest{Email: "lan@example.com", Password: "password123"})
	require.NoError(t, err)
	svc.ForceLogout()
	assert.False(t, svc.State().IsLoggedIn)
	assert.Equal(t, MsgSessionExpired, svc.State().Error)
	assert.Empty(t, svc.Token())
	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}

func TestService_UpdateProfile(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "lan@example.com").Return(lan, nil)
	repo.On("Update", mock.Anything, int64(2), map[string]interface{}{"fullName": "Lan Nguyen", "phone": "0912345678"}).
		Return(&user.User{ID: 2, Email: "lan@example.com", FullName: "Lan Nguyen", Phone: "0912345678", Role: user.RoleUser}, nil)
	storage := NewMemoryStorage()
	svc := NewService("sid", repo, storage, fakeIssuer{})
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, ProfileRequest{FullName: "Lan Nguyen"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Login(ctx, LoginRequest{Email: "lan@example.com", Password: "password123"})
	require.NoError(t, err)
	u, err := svc.UpdateProfile(ctx, ProfileRequest{FullName: "Lan Nguyen", Phone: "0912345678"})
	require.NoError(t, err)
	assert.Equal(t, "Lan Nguyen", u.FullName)
	assert.Equal(t, "Lan Nguyen", svc.State().User.FullName)
	assert.True(t, svc.State().IsLoggedIn)

	data, _ := storage.Get(ctx, "sid")
	assert.Contains(t, string(data), "Lan Nguyen")
}

func TestService_TokenFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "lan@example.com").Return(lan, nil)
	svc := NewService("sid", repo, NewMemoryStorage(), fakeIssuer{err: errors.New("no secret")})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "lan@example.com", Password: "password123"})

	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
	assert.False(t, svc.State().IsLoggedIn)
}

func TestService_ClearMessages(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "x@example.com").Return(nil, notFound())
	svc := NewService("sid", repo, NewMemoryStorage(), fakeIssuer{})

	_, _ = svc.Login(context.Background(), LoginRequest{Email: "x@example.com", Password: "password1"})
	require.NotEmpty(t, svc.State().Error)
	svc.ClearError()
	assert.Empty(t, svc.State().Error)
}
