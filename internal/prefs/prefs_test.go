package prefs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "nested", FileName))
}

func TestCopyHashtagDefault(t *testing.T) {
	s := newStore(t)

	v, err := s.CopyHashtag()
	require.NoError(t, err)
	assert.True(t, v, "copy_hashtag defaults to true")

	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "reading must not create the file")
}

func TestSetAndToggle(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.SetCopyHashtag(false))
	v, err := s.CopyHashtag()
	require.NoError(t, err)
	assert.False(t, v)

	v, err = s.ToggleCopyHashtag()
	require.NoError(t, err)
	assert.True(t, v)

	v, err = s.ToggleCopyHashtag()
	require.NoError(t, err)
	assert.False(t, v)

	// A second store on the same file sees the persisted value.
	other := Open(s.Path())
	v, err = other.CopyHashtag()
	require.NoError(t, err)
	assert.False(t, v)

	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestToggleFromDefault(t *testing.T) {
	s := newStore(t)
	v, err := s.Toggle("other", false)
	require.NoError(t, err)
	assert.True(t, v)

	hashtag, err := s.CopyHashtag()
	require.NoError(t, err)
	assert.True(t, hashtag, "unrelated keys keep their defaults")
}

func TestNonBoolValueFallsBackToDefault(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"copy_hashtag": "yes", "keep": 3}`), 0o644))

	v, err := s.CopyHashtag()
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, s.SetCopyHashtag(false))
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"keep": 3`, "unknown keys are preserved")
}

func TestCorruptFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{not json`), 0o644))

	v, err := s.CopyHashtag()
	assert.Error(t, err)
	assert.True(t, v, "the default is returned alongside the error")
	assert.Error(t, s.SetCopyHashtag(true), "a corrupt file is not silently overwritten")
}

func TestConcurrentToggles(t *testing.T) {
	s := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ToggleCopyHashtag()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// An even number of toggles returns to the default.
	v, err := s.CopyHashtag()
	require.NoError(t, err)
	assert.True(t, v)
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	assert.Equal(t, dir, ConfigDir())
	assert.Equal(t, filepath.Join(dir, FileName), DefaultPath())
}

func TestOpenDir(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(EnvConfigDir, envDir)

	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, FileName), OpenDir(dir).Path())
	assert.Equal(t, filepath.Join(envDir, FileName), OpenDir("").Path())
	assert.Equal(t, OpenDir("").Path(), OpenDefault().Path())
}
