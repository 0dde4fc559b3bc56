package usecase

import (
	"context"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	s, ok := f.sessions[token]
	if !ok {
		return assert.AnError
	}
	now := s.CreatedAt
	s.RevokedAt = &now
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	for _, s := range f.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			now := s.CreatedAt
			s.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(context.Context) error {
	for token, s := range f.sessions {
		if s.ExpiresAt.Before(time.Now().Add(-7 * 24 * time.Hour)) {
			delete(f.sessions, token)
		}
	}
	return nil
}

func newAuthFixture() (AuthService, UserService, *fakeSessionRepo) {
	users := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	sessions := &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
	repo := &repository.Repository{User: users, Session: sessions}
	cfg := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}

	return NewAuthService(repo, cfg, zap.NewNop()), NewUserService(users, zap.NewNop()), sessions
}

func TestRegisterAndLogin(t *testing.T) {
	auth, users, sessions := newAuthFixture()
	name := "Ana"

	registered, err := auth.Register(context.Background(), &request.RegisterRequest{
		Email: " Ana@Example.com ", Password: "secret1", DisplayName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", registered.Email)
	assert.NotEmpty(t, registered.Token)

	loggedIn, err := auth.Login(context.Background(), &request.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token, loggedIn.Token)
	assert.Len(t, sessions.sessions, 2)

	userID, err := uuid.Parse(loggedIn.UserID)
	require.NoError(t, err)
	profile, err := users.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", *profile.DisplayName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth, _, _ := newAuthFixture()
	req := &request.RegisterRequest{Email: "ana@example.com", Password: "secret1"}

	_, err := auth.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth, _, _ := newAuthFixture()
	_, err := auth.Register(context.Background(), &request.RegisterRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), &request.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), &request.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RevokesSession(t *testing.T) {
	auth, _, sessions := newAuthFixture()
	resp, err := auth.Register(context.Background(), &request.RegisterRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(context.Background(), resp.Token))

	session, err := sessions.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session)

	assert.ErrorIs(t, auth.Logout(context.Background(), "garbage"), ErrNotAuthenticated)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	auth, _, sessions := newAuthFixture()
	registered, err := auth.Register(context.Background(), &request.RegisterRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	second, err := auth.Login(context.Background(), &request.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	other, err := auth.Register(context.Background(), &request.RegisterRequest{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, auth.LogoutAll(context.Background(), uuid.MustParse(registered.UserID)))

	for _, token := range []string{registered.Token, second.Token} {
		session, err := sessions.FindValidSession(context.Background(), token)
		require.NoError(t, err)
		assert.Nil(t, session)
	}

	session, err := sessions.FindValidSession(context.Background(), other.Token)
	require.NoError(t, err)
	assert.NotNil(t, session)

	assert.ErrorIs(t, auth.LogoutAll(context.Background(), uuid.Nil), ErrNotAuthenticated)
}

func TestCleanExpiredSessions(t *testing.T) {
	auth, _, sessions := newAuthFixture()
	resp, err := auth.Register(context.Background(), &request.RegisterRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	sessions.sessions["stale"] = &entity.Session{ExpiresAt: time.Now().Add(-8 * 24 * time.Hour)}

	require.NoError(t, auth.CleanExpiredSessions(context.Background()))

	assert.NotContains(t, sessions.sessions, "stale")
	assert.Contains(t, sessions.sessions, resp.Token)
}

func TestUpdateProfile(t *testing.T) {
	auth, users, _ := newAuthFixture()
	resp, err := auth.Register(context.Background(), &request.RegisterRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	userID := uuid.MustParse(resp.UserID)

	profile, err := users.UpdateProfile(context.Background(), userID, &request.UpdateProfileRequest{DisplayName: "Ana B"})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", *profile.DisplayName)

	_, err = users.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
