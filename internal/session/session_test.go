package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewStore(dir)

	want := &Session{ID: "7", Username: "alice", Email: "a@example.com", Roles: []string{"ROLE_USER"}, Token: "abc123", TokenType: "Bearer"}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, store.IsAuthenticated())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Save(&Session{Username: "alice"})
	assert.Error(t, err)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_LoadReadsFreshEachCall(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(&Session{Username: "alice", Token: "one"}))

	// Another process replaces the record.
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"username":"bob","accessToken":"two"}`), 0600))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "bob", sess.Username)
	assert.Equal(t, "two", sess.Token)
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0600))
	store := NewStore(dir)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_EmptyTokenIsNotAuthenticated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"username":"alice","accessToken":""}`), 0600))

	assert.False(t, NewStore(dir).IsAuthenticated())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(&Session{Username: "alice", Token: "abc123"}))
	require.True(t, store.IsAuthenticated())

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, store.IsAuthenticated())

	removed, err = store.Clear()
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSession_BlankTokenIsNotValid(t *testing.T) {
	assert.False(t, (&Session{Token: "   "}).Valid())
	assert.False(t, (*Session)(nil).Valid())
	assert.True(t, (&Session{Token: "abc123"}).Valid())

	store := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"accessToken":" "}`), 0600))
	assert.False(t, store.IsAuthenticated())
}

func TestStore_SaveFailureIsStoreError(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0600))

	err := NewStore(parent).Save(&Session{Username: "alice", Token: "abc123"})

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "write", storeErr.Op)
	assert.Contains(t, err.Error(), "write session: ")
}
