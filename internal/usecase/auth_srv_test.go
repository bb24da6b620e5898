package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"yamdb/internal/data/entity"
	"yamdb/internal/dto/request"
	"yamdb/pkg/apperr"
	"yamdb/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var authNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newAuthService(t *testing.T, expiryHours int) (*mocks, AuthService) {
	t.Helper()
	m, repo := newMocks()
	cfg := &utils.Config{Session: utils.SessionConfig{ExpiryHours: expiryHours}}

	svc := NewAuthService(repo, cfg, nopLogger())
	svc.(*authService).now = func() time.Time { return authNow }
	return m, svc
}

func TestAuthService_Register(t *testing.T) {
	m, svc := newAuthService(t, 48)
	client := ClientInfo{UserAgent: "curl/8.0", IPAddress: "10.0.0.1"}

	m.user.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alice" &&
			u.Email == "alice@example.com" &&
			u.Role == entity.RoleUser &&
			u.IsActive &&
			utils.CheckPasswordHash("s3cret-pass", u.PasswordHash)
	})).Return(nil)
	m.session.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.ExpiresAt.Equal(authNow.Add(48*time.Hour)) &&
			s.UserAgent != nil && *s.UserAgent == "curl/8.0" &&
			s.IPAddress != nil && *s.IPAddress == "10.0.0.1"
	})).Return(nil)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
	}, client)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.NotEmpty(t, resp.Token)
	m.assertExpectations(t)
}

func TestAuthService_Register_Invalid(t *testing.T) {
	m, svc := newAuthService(t, 0)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "me",
		Email:    "not-an-email",
		Password: "short",
	}, ClientInfo{})

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "username")
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
	m.assertExpectations(t)
}

func TestAuthService_Register_Taken(t *testing.T) {
	m, svc := newAuthService(t, 0)

	m.user.On("Create", mock.Anything, mock.Anything).
		Return(apperr.AlreadyExists("user", "(users_username_key)"))

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	}, ClientInfo{})
	assert.True(t, errors.Is(err, apperr.ErrAlreadyExists))
	m.session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	user := &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         entity.RoleModerator,
		IsActive:     true,
	}

	t.Run("success uses default expiry", func(t *testing.T) {
		m, svc := newAuthService(t, 0)
		m.user.On("FindByLogin", mock.Anything, "alice").Return(user, nil)
		m.session.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
			return s.UserID == user.ID && s.ExpiresAt.Equal(authNow.Add(24*time.Hour)) && s.UserAgent == nil
		})).Return(nil)

		resp, err := svc.Login(context.Background(), &request.LoginRequest{Login: "alice", Password: "s3cret-pass"}, ClientInfo{})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleModerator, resp.Role)
		m.assertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		m, svc := newAuthService(t, 0)
		m.user.On("FindByLogin", mock.Anything, "alice").Return(user, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Login: "alice", Password: "nope"}, ClientInfo{})
		assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	})

	t.Run("unknown user", func(t *testing.T) {
		m, svc := newAuthService(t, 0)
		m.user.On("FindByLogin", mock.Anything, "bob").Return(nil, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Login: "bob", Password: "whatever"}, ClientInfo{})
		assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	})

	t.Run("deactivated", func(t *testing.T) {
		m, svc := newAuthService(t, 0)
		inactive := *user
		inactive.IsActive = false
		m.user.On("FindByLogin", mock.Anything, "alice").Return(&inactive, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Login: "alice", Password: "s3cret-pass"}, ClientInfo{})
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("malformed token", func(t *testing.T) {
		m, svc := newAuthService(t, 0)
		err := svc.Logout(context.Background(), "not-a-uuid")
		assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
		m.assertExpectations(t)
	})

	t.Run("already revoked", func(t *testing.T) {
		m, svc := newAuthService(t, 0)
		token := uuid.New()
		m.session.On("Revoke", mock.Anything, token).Return(false, nil)

		err := svc.Logout(context.Background(), token.String())
		assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	})

	t.Run("revoked", func(t *testing.T) {
		m, svc := newAuthService(t, 0)
		token := uuid.New()
		m.session.On("Revoke", mock.Anything, token).Return(true, nil)

		require.NoError(t, svc.Logout(context.Background(), token.String()))
		m.assertExpectations(t)
	})
}

func TestAuthService_CleanupSessions(t *testing.T) {
	m, svc := newAuthService(t, 0)
	m.session.On("CleanExpiredSessions", mock.Anything).Return(int64(3), nil)

	removed, err := svc.CleanupSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
