package session

import (
	"context"
	"testing"
	"time"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	pushes []string
}

func (n *recordingNavigator) Push(path string) {
	n.pushes = append(n.pushes, path)
}

func newMockStore(t *testing.T) (*Store, *recordingNavigator, CredentialStore) {
	t.Helper()
	cfg := config.Config{Env: "production", MockAPI: true}
	nav := &recordingNavigator{}
	gw := gateway.NewWithTransport(gateway.NewMockTransport(time.Millisecond), nav, nil)
	creds := NewFileCredentialStore(t.TempDir())
	return NewStore(cfg, gw, creds, nav, nil), nav, creds
}

func TestMockLoginAssignsRoleFromEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		email       string
		wantName    string
		wantRole    string
		wantLanding string
	}{
		{"admin@library.test", "admin", types.RoleAdmin, "/admin/dashboard"},
		{"bob@library.test", "bob", types.RoleUser, "/dashboard"},
		{"headadmin@library.test", "headadmin", types.RoleAdmin, "/admin/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			store, nav, _ := newMockStore(t)

			require.True(t, store.Login(ctx, tt.email, "whatever"))

			user, ok := store.Current()
			require.True(t, ok)
			assert.Equal(t, tt.wantName, user.Name)
			assert.Equal(t, tt.wantRole, user.Role)
			require.Len(t, nav.pushes, 1)
			assert.Equal(t, tt.wantLanding, nav.pushes[0])
		})
	}
}

func TestMockLoginPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store, _, creds := newMockStore(t)

	require.True(t, store.Login(ctx, "carol@library.test", "pw"))

	// A fresh store over the same credential dir simulates a restart.
	cfg := config.Config{Env: "production", MockAPI: true}
	gw := gateway.NewWithTransport(gateway.NewMockTransport(time.Millisecond), nil, nil)
	restarted := NewStore(cfg, gw, creds, nil, nil)
	restarted.CheckSession(ctx)

	user, ok := restarted.Current()
	require.True(t, ok)
	assert.Equal(t, "carol@library.test", user.Email)
}

func TestMockRegisterLandsOnDashboard(t *testing.T) {
	ctx := context.Background()
	store, nav, _ := newMockStore(t)

	require.True(t, store.Register(ctx, "Dana", "dana@library.test", "pw"))

	user, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "Dana", user.Name)
	assert.Equal(t, types.RoleUser, user.Role)
	assert.Positive(t, user.ID)
	require.Len(t, nav.pushes, 1)
	assert.Equal(t, "/dashboard", nav.pushes[0])
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	store, nav, creds := newMockStore(t)

	require.True(t, store.Login(ctx, "erin@library.test", "pw"))
	store.Logout(ctx)

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Equal(t, "/login", nav.pushes[len(nav.pushes)-1])

	_, persisted, err := creds.Load()
	require.NoError(t, err)
	assert.False(t, persisted)

	store.CheckSession(ctx)
	_, ok = store.Current()
	assert.False(t, ok, "session must stay anonymous after logout")
}

func TestCheckSessionWithoutStateIsAnonymous(t *testing.T) {
	store, _, _ := newMockStore(t)
	store.CheckSession(context.Background())

	_, ok := store.Current()
	assert.False(t, ok)
	assert.False(t, store.Loading())
}
