package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/vessel-console/internal/database"
	"github.com/ngmaloney/vessel-console/internal/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type fakeAuth struct {
	session  *Session
	token    string
	user     *models.User
	loginErr error
	meErr    error
	meToken  string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	return f.token, f.loginErr
}

func (f *fakeAuth) Me(ctx context.Context) (*models.User, error) {
	f.meToken = f.session.Token()
	return f.user, f.meErr
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, Expired(signed(t, now.Add(-time.Minute)), now))
	assert.False(t, Expired(signed(t, now.Add(time.Hour)), now))
	assert.False(t, Expired("opaque-token", now))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.False(t, Expired(noExp, now))
}

func TestStore_RoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	token, user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	require.NoError(t, store.Save(ctx, "t1", &models.User{ID: 1, Email: "a@fleet.test", Role: models.RoleManager}))
	require.NoError(t, store.Save(ctx, "t2", &models.User{ID: 2, Email: "b@fleet.test", Role: models.RoleEmployee}))

	token, user, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t2", token)
	require.NotNil(t, user)
	assert.Equal(t, "b@fleet.test", user.Email)

	require.NoError(t, store.Clear(ctx))
	token, _, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_LoginPersistsAndInitRestores(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	token := signed(t, time.Now().Add(time.Hour))

	s := New(store)
	auth := &fakeAuth{session: s, token: token, user: &models.User{ID: 3, Email: "ops@fleet.test", Role: models.RoleSupervisor}}

	user, err := s.Login(ctx, auth, "ops@fleet.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ops@fleet.test", user.Email)
	assert.Equal(t, token, auth.meToken, "profile must be fetched with the new token")
	assert.True(t, s.Authenticated())
	assert.True(t, s.CanManageUsers())
	assert.False(t, s.IsEmployee())

	restored := New(store)
	require.NoError(t, restored.Init(ctx))
	assert.Equal(t, token, restored.Token())
	require.NotNil(t, restored.User())
	assert.Equal(t, int64(3), restored.User().ID)
}

func TestSession_InitDropsExpiredToken(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, signed(t, time.Now().Add(-time.Hour)), &models.User{ID: 1}))

	s := New(store)
	require.NoError(t, s.Init(ctx))
	assert.Empty(t, s.Token())
	assert.False(t, s.Authenticated())

	token, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_LoginFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("bad credentials", func(t *testing.T) {
		s := New(nil)
		auth := &fakeAuth{session: s, loginErr: errors.New("invalid credentials")}
		_, err := s.Login(ctx, auth, "x", "y")
		assert.EqualError(t, err, "invalid credentials")
		assert.False(t, s.Authenticated())
	})

	t.Run("profile fails", func(t *testing.T) {
		store := newStore(t)
		s := New(store)
		auth := &fakeAuth{session: s, token: "tok", meErr: errors.New("boom")}
		_, err := s.Login(ctx, auth, "x", "y")
		require.Error(t, err)
		assert.Empty(t, s.Token())

		token, _, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestSession_InvalidateTearsDown(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	s := New(store)
	auth := &fakeAuth{session: s, token: "tok", user: &models.User{ID: 1, Role: models.RoleEmployee}}
	_, err := s.Login(ctx, auth, "x", "y")
	require.NoError(t, err)
	assert.True(t, s.IsEmployee())

	s.Invalidate()
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	token, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// second call is a no-op
	s.Invalidate()
}

func TestSession_UserIsCopy(t *testing.T) {
	s := New(nil)
	auth := &fakeAuth{session: s, token: "tok", user: &models.User{ID: 1, Role: models.RoleAdmin}}
	_, err := s.Login(context.Background(), auth, "x", "y")
	require.NoError(t, err)

	u := s.User()
	u.Role = models.RoleEmployee
	assert.Equal(t, models.RoleAdmin, s.User().Role)
}
