package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "", s.Get(KeyAdminAuth))

	require.NoError(t, s.Set(KeyAdminAuth, "token123"))
	require.NoError(t, s.SetBool("flag", true))

	assert.Equal(t, "token123", s.Get(KeyAdminAuth))
	assert.True(t, s.GetBool("flag"))

	// Values survive a reopen.
	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "token123", reopened.Get(KeyAdminAuth))
	assert.True(t, reopened.GetBool("flag"))
}

func TestStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(KeyAdminUser, "a@b.c"))
	require.NoError(t, s.Delete(KeyAdminUser))
	assert.Equal(t, "", s.Get(KeyAdminUser))

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete("never-set"))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "", reopened.Get(KeyAdminUser))
}

func TestStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "", s.Get(KeyAdminAuth))

	// The store stays writable after discarding the corrupt content.
	require.NoError(t, s.Set(KeyAdminUser, "a@b.c"))
	assert.Equal(t, "a@b.c", s.Get(KeyAdminUser))
}

func TestStoreMissingDirectoryCreatedOnFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
