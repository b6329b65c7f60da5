package session

import (
	"path/filepath"
	"testing"

	"github.com/openshelf/openshelf/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCredentialStoreRoundTrip(t *testing.T) {
	// The directory does not exist yet; Save must create it.
	store := NewFileCredentialStore(filepath.Join(t.TempDir(), "state"))

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	user := types.User{ID: 4, Name: "Mia", Email: "mia@library.test", Role: types.RoleUser}
	require.NoError(t, store.Save(user))

	loaded, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user, loaded)

	require.NoError(t, store.Clear())
	_, ok, err = store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear())
}
