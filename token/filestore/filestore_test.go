package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/schoolgest-client/token"
	"github.com/jrsteele09/schoolgest-client/token/filestore"
	"github.com/stretchr/testify/require"
)

func TestRepo_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := filestore.New(path)
	_, err := first.Get(token.KeyAccessToken)
	require.ErrorIs(t, err, token.ErrNotFound)

	require.NoError(t, first.Set(token.KeyAccessToken, "T1"))
	require.NoError(t, first.Set(token.KeyRefreshToken, "R1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := filestore.New(path)
	v, err := second.Get(token.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "T1", v)
}

func TestRepo_DeleteRemovesFileWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	r := filestore.New(path)
	require.NoError(t, r.Set(token.KeyAccessToken, "T1"))
	require.NoError(t, r.Set(token.KeyRole, "ADMIN"))

	require.NoError(t, r.Delete(token.KeyAccessToken))
	v, err := r.Get(token.KeyRole)
	require.NoError(t, err)
	require.Equal(t, "ADMIN", v)

	require.NoError(t, r.Delete(token.AllKeys...))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Deleting from a missing file is not an error
	require.NoError(t, r.Delete(token.AllKeys...))
}

func TestRepo_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	_, err := filestore.New(path).Get(token.KeyAccessToken)
	require.Error(t, err)
	require.NotErrorIs(t, err, token.ErrNotFound)
}
