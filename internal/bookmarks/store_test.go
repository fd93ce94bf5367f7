package bookmarks

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func TestStoreAddListLatest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state", "bookmarks.json")

	s, err := Open(path)
	require.NoError(t, err)
	s.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err = s.Add(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	_, err = s.Add(filepath.Join(dir, "sub", "..", "b.md"))
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	require.Equal(t, filepath.Join(dir, "b.md"), list[0].Path)
	require.Equal(t, filepath.Join(dir, "a.md"), list[1].Path)

	latest, err := s.Latest()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "b.md"), latest.Path)

	// re-adding moves the bookmark to the front without duplicating it
	_, err = s.Add(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	list = s.List()
	require.Len(t, list, 2)
	require.Equal(t, filepath.Join(dir, "a.md"), list[0].Path)
}

func TestStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Add("/docs/readme.md")
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	require.True(t, reopened.Contains("/docs/readme.md"))
	require.True(t, reopened.Contains("/docs/./readme.md"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStoreRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Add("/docs/a.md")
	require.NoError(t, err)

	require.NoError(t, s.Remove("/docs/a.md"))
	require.False(t, s.Contains("/docs/a.md"))
	require.ErrorIs(t, s.Remove("/docs/a.md"), ErrNotFound)

	_, err = s.Latest()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := Open(path)
	require.Error(t, err)
}

func TestAddRejectsEmptyPath(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "bookmarks.json"))
	require.NoError(t, err)
	_, err = s.Add("")
	require.Error(t, err)
}
