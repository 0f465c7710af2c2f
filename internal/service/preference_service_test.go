package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/wavescope/internal/logger"
)

func newPreferenceFixture(t *testing.T) (*PreferenceService, *memory.PreferencesRepository) {
	t.Helper()

	repo := memory.NewPreferencesRepository()
	return NewPreferenceService(logger.NewTestLogger(), repo), repo
}

// failingRepository rejects every call.
type failingRepository struct{}

var errRepository = errors.New("repository unavailable")

func (failingRepository) SaveLastFolder(string) error        { return errRepository }
func (failingRepository) LoadLastFolder() (string, error)    { return "", errRepository }
func (failingRepository) SaveRecentFiles([]string) error     { return errRepository }
func (failingRepository) LoadRecentFiles() ([]string, error) { return nil, errRepository }
func (failingRepository) Clear() error                       { return errRepository }

func TestPreferenceService_NothingRemembered(t *testing.T) {
	svc, _ := newPreferenceFixture(t)

	assert.Empty(t, svc.LastFolder())
	assert.Empty(t, svc.RecentFiles())
}

func TestPreferenceService_LoadsRepositoryValues(t *testing.T) {
	repo := memory.NewPreferencesRepository()
	require.NoError(t, repo.SaveLastFolder("/music"))
	require.NoError(t, repo.SaveRecentFiles([]string{"/music/a.mp3"}))

	svc := NewPreferenceService(logger.NewTestLogger(), repo)

	assert.Equal(t, "/music", svc.LastFolder())
	assert.Equal(t, []string{"/music/a.mp3"}, svc.RecentFiles())
}

func TestPreferenceService_RememberFile(t *testing.T) {
	svc, repo := newPreferenceFixture(t)

	require.NoError(t, svc.RememberFile("/music/a.mp3"))
	require.NoError(t, svc.RememberFile("/other/b.wav"))
	require.NoError(t, svc.RememberFile("/music/a.mp3"))

	assert.Equal(t, []string{"/music/a.mp3", "/other/b.wav"}, svc.RecentFiles())
	assert.Equal(t, "/music", svc.LastFolder())

	saved, err := repo.LoadRecentFiles()
	require.NoError(t, err)
	assert.Equal(t, svc.RecentFiles(), saved)
}

func TestPreferenceService_RecentFilesAreBounded(t *testing.T) {
	svc, _ := newPreferenceFixture(t)

	for i := range MaxRecentFiles + 5 {
		require.NoError(t, svc.RememberFile(fmt.Sprintf("/m/%02d.mp3", i)))
	}

	recent := svc.RecentFiles()
	assert.Len(t, recent, MaxRecentFiles)
	assert.Equal(t, "/m/14.mp3", recent[0])
}

func TestPreferenceService_ResetToDefaults(t *testing.T) {
	svc, repo := newPreferenceFixture(t)
	require.NoError(t, svc.RememberFile("/music/a.mp3"))

	require.NoError(t, svc.ResetToDefaults())

	assert.Empty(t, svc.LastFolder())
	assert.Empty(t, svc.RecentFiles())
	folder, err := repo.LoadLastFolder()
	require.NoError(t, err)
	assert.Empty(t, folder)
}

func TestPreferenceService_RepositoryFailures(t *testing.T) {
	svc := NewPreferenceService(logger.NewTestLogger(), failingRepository{})

	assert.Empty(t, svc.LastFolder())
	assert.ErrorIs(t, svc.RememberFile("/music/a.mp3"), errRepository)
	assert.Equal(t, []string{"/music/a.mp3"}, svc.RecentFiles(), "the session list still updates")
	assert.ErrorIs(t, svc.ResetToDefaults(), errRepository)
}
