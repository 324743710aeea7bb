package session

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/internal/infra/storage/kv"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	"github.com/m04kA/SMC-FieldService/pkg/logger"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*fieldapi.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldapi.LoginResponse), args.Error(1)
}

func (m *mockAuth) Register(ctx context.Context, req fieldapi.RegisterRequest) (*fieldapi.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldapi.LoginResponse), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func newStore(t *testing.T) *kv.Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := kv.NewRepository(db, "sqlite3")
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestManager_LoginPersistsWithoutPassword(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	auth := &mockAuth{}
	token := signedToken(t, now.Add(time.Hour))
	auth.On("Login", ctx, "ivanov", "secret").Return(&fieldapi.LoginResponse{
		Token: token, UserID: 7, Username: "ivanov", Position: "мастер",
	}, nil)

	m := NewManager(store, auth, logger.NewNop())
	m.timeProvider = fixedTime{now: now}

	s, err := m.Login(ctx, " ivanov ", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.UserID)
	require.NotNil(t, s.ExpiresAt)
	assert.Equal(t, now.Add(time.Hour).Unix(), s.ExpiresAt.Unix())
	assert.Equal(t, token, m.Token())

	values, err := store.GetMany(ctx, domain.KeyUserToken, domain.KeyUserID, domain.KeyUsername, domain.KeyPosition, "password")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		domain.KeyUserToken: token,
		domain.KeyUserID:    "7",
		domain.KeyUsername:  "ivanov",
		domain.KeyPosition:  "мастер",
	}, values)
}

func TestManager_InitRestoresSession(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SetMany(ctx, map[string]string{
		domain.KeyUserToken: "opaque-token",
		domain.KeyUserID:    "3",
		domain.KeyUsername:  "petrov",
	}))

	m := NewManager(store, &mockAuth{}, logger.NewNop())
	require.NoError(t, m.Init(ctx))

	s, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", s.Token)
	assert.Equal(t, int64(3), s.UserID)
	assert.Nil(t, s.ExpiresAt)
}

func TestManager_InitWithoutSession(t *testing.T) {
	m := NewManager(newStore(t), &mockAuth{}, logger.NewNop())
	require.NoError(t, m.Init(context.Background()))

	_, err := m.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, m.Token())
}

func TestManager_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SetMany(ctx, map[string]string{
		domain.KeyUserToken: signedToken(t, now.Add(-time.Minute)),
		domain.KeyUserID:    "3",
	}))

	m := NewManager(store, &mockAuth{}, logger.NewNop())
	m.timeProvider = fixedTime{now: now}
	require.NoError(t, m.Init(ctx))

	_, err := m.Current()
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, IsAuthError(err))
	assert.Empty(t, m.Token())
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	auth := &mockAuth{}
	auth.On("Login", ctx, "ivanov", "secret").Return(&fieldapi.LoginResponse{Token: "t", UserID: 1}, nil)

	m := NewManager(store, auth, logger.NewNop())
	_, err := m.Login(ctx, "ivanov", "secret")
	require.NoError(t, err)
	require.NoError(t, store.SetMany(ctx, map[string]string{domain.KeyTaskFormData: "{}"}))

	require.NoError(t, m.Logout(ctx))

	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	values, err := store.GetMany(ctx, append(domain.SessionKeys, domain.KeyTaskFormData)...)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestManager_LoginValidation(t *testing.T) {
	m := NewManager(newStore(t), &mockAuth{}, logger.NewNop())

	_, err := m.Login(context.Background(), "", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Login(context.Background(), "ivanov", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestManager_LoginFailureKeepsNoSession(t *testing.T) {
	ctx := context.Background()
	auth := &mockAuth{}
	auth.On("Login", ctx, "ivanov", "wrong").Return(nil, fmt.Errorf("%w: bad credentials", fieldapi.ErrUnauthorized))

	m := NewManager(newStore(t), auth, logger.NewNop())
	_, err := m.Login(ctx, "ivanov", "wrong")
	assert.ErrorIs(t, err, fieldapi.ErrUnauthorized)

	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestManager_RegisterFallsBackToLogin(t *testing.T) {
	ctx := context.Background()
	auth := &mockAuth{}
	req := fieldapi.RegisterRequest{Username: "sidorov", Password: "pw", FullName: "Сидоров"}
	auth.On("Register", ctx, req).Return(&fieldapi.LoginResponse{UserID: 9}, nil)
	auth.On("Login", ctx, "sidorov", "pw").Return(&fieldapi.LoginResponse{Token: "tok", UserID: 9}, nil)

	m := NewManager(newStore(t), auth, logger.NewNop())
	s, err := m.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "sidorov", s.Username)
	auth.AssertExpectations(t)
}
