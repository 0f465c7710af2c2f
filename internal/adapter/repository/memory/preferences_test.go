package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRepository_StartsEmpty(t *testing.T) {
	repo := NewPreferencesRepository()

	folder, err := repo.LoadLastFolder()
	require.NoError(t, err)
	assert.Empty(t, folder)

	recent, err := repo.LoadRecentFiles()
	require.NoError(t, err)
	assert.NotNil(t, recent)
	assert.Empty(t, recent)
}

func TestPreferencesRepository_LastFolder(t *testing.T) {
	repo := NewPreferencesRepository()

	require.NoError(t, repo.SaveLastFolder("/music"))

	folder, err := repo.LoadLastFolder()
	require.NoError(t, err)
	assert.Equal(t, "/music", folder)
}

func TestPreferencesRepository_RecentFilesAreCopied(t *testing.T) {
	repo := NewPreferencesRepository()
	paths := []string{"/music/a.mp3", "/music/b.flac"}

	require.NoError(t, repo.SaveRecentFiles(paths))
	paths[0] = "changed"

	loaded, err := repo.LoadRecentFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"/music/a.mp3", "/music/b.flac"}, loaded)

	loaded[1] = "changed"
	again, err := repo.LoadRecentFiles()
	require.NoError(t, err)
	assert.Equal(t, "/music/b.flac", again[1])
}

func TestPreferencesRepository_Clear(t *testing.T) {
	repo := NewPreferencesRepository()
	require.NoError(t, repo.SaveLastFolder("/music"))
	require.NoError(t, repo.SaveRecentFiles([]string{"/music/a.mp3"}))

	require.NoError(t, repo.Clear())

	folder, _ := repo.LoadLastFolder()
	recent, _ := repo.LoadRecentFiles()
	assert.Empty(t, folder)
	assert.Empty(t, recent)
}

func TestPreferencesRepository_ConcurrentAccess(t *testing.T) {
	repo := NewPreferencesRepository()
	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.SaveRecentFiles([]string{string(rune('a' + i))})
			_ = repo.SaveLastFolder("/music")
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.LoadRecentFiles()
			_, _ = repo.LoadLastFolder()
		}()
	}
	wg.Wait()

	recent, err := repo.LoadRecentFiles()
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
