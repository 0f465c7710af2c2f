package service

import (
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// MaxRecentFiles bounds the remembered file history.
const MaxRecentFiles = 10

// PreferenceService remembers the user's choices for the running session: the
// folder files were opened from and the recently opened files.
//
// All operations are thread-safe via sync.RWMutex.
type PreferenceService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.PreferencesRepository

	// Cached preferences
	lastFolder string
	recent     []string

	mu sync.RWMutex
}

// NewPreferenceService creates a preference service and loads whatever the
// repository already holds. Unreadable entries are logged and treated as unset.
func NewPreferenceService(logger *slog.Logger, repository ports.PreferencesRepository) *PreferenceService {
	s := &PreferenceService{
		logger:     logger.With(slog.String("service", "preference")),
		repository: repository,
	}

	s.loadPreferences()

	s.logger.Debug("preference service initialized")
	return s
}

func (s *PreferenceService) loadPreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if folder, err := s.repository.LoadLastFolder(); err != nil {
		s.logger.Warn("ignoring last folder", slog.Any("error", err))
	} else {
		s.lastFolder = folder
	}

	if recent, err := s.repository.LoadRecentFiles(); err != nil {
		s.logger.Warn("ignoring recent files", slog.Any("error", err))
	} else {
		s.recent = recent
	}
}

// LastFolder returns the folder the last file was opened from.
func (s *PreferenceService) LastFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFolder
}

// RecentFiles returns recently opened files, newest first.
func (s *PreferenceService) RecentFiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recent)
}

// RememberFile records path as the most recent file and its directory as the
// last folder.
func (s *PreferenceService) RememberFile(path string) error {
	s.mu.Lock()
	recent := slices.DeleteFunc(slices.Clone(s.recent), func(p string) bool { return p == path })
	recent = append([]string{path}, recent...)
	if len(recent) > MaxRecentFiles {
		recent = recent[:MaxRecentFiles]
	}
	s.recent = recent
	s.lastFolder = filepath.Dir(path)
	folder := s.lastFolder
	s.mu.Unlock()

	if err := s.repository.SaveLastFolder(folder); err != nil {
		return err
	}
	return s.repository.SaveRecentFiles(recent)
}

// ResetToDefaults forgets everything remembered.
func (s *PreferenceService) ResetToDefaults() error {
	s.mu.Lock()
	s.lastFolder = ""
	s.recent = nil
	s.mu.Unlock()

	return s.repository.Clear()
}
