package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(DefaultPath(t.TempDir()))
}

func TestLoad_MissingFileMeansLoggedOut(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())
	assert.Nil(t, s.Current())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := DefaultPath(dir)

	s := NewStore(path)
	sess := Session{
		Token: "tok-123",
		Admin: Admin{
			AdminID: "adm-1",
			Email:   "admin@signify.gov.rw",
			Name:    "Admin User",
		},
		LoginTime: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Save(sess))

	// Token file must be owner-only.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A fresh store sees the persisted session.
	s2 := NewStore(path)
	require.NoError(t, s2.Load())
	got := s2.Current()
	require.NotNil(t, got)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, sess.Admin, got.Admin)
	assert.True(t, s2.Authenticated())
}

func TestClear_RemovesTokenAndIdentityTogether(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(Session{Token: "tok", Admin: Admin{Email: "a@b.c"}}))
	require.NoError(t, s.Clear())

	assert.Nil(t, s.Current())
	assert.False(t, s.Authenticated())

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestLoad_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	path := DefaultPath(dir)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(path)
	require.NoError(t, s.Load())
	assert.Nil(t, s.Current())
}

func TestLoad_EmptyTokenTreatedAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":""}`), 0o600))

	s := NewStore(path)
	require.NoError(t, s.Load())
	assert.False(t, s.Authenticated())
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(Session{Token: "tok", Admin: Admin{Name: "A"}}))

	got := s.Current()
	got.Admin.Name = "mutated"
	assert.Equal(t, "A", s.Current().Admin.Name)
}
