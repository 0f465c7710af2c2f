// Package memory implements repositories held in process memory.
// Nothing is written to disk; a new process starts empty.
package memory

import (
	"slices"
	"sync"

	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// PreferencesRepository implements ports.PreferencesRepository in memory.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	lastFolder string
	recent     []string
	mu         sync.RWMutex
}

// NewPreferencesRepository creates an empty preferences repository.
func NewPreferencesRepository() *PreferencesRepository {
	return &PreferencesRepository{}
}

// SaveLastFolder stores the last folder a file was opened from.
func (r *PreferencesRepository) SaveLastFolder(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastFolder = path
	return nil
}

// LoadLastFolder retrieves the last folder.
func (r *PreferencesRepository) LoadLastFolder() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastFolder, nil
}

// SaveRecentFiles stores a copy of the recent file list.
func (r *PreferencesRepository) SaveRecentFiles(paths []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recent = slices.Clone(paths)
	return nil
}

// LoadRecentFiles retrieves a copy of the recent file list.
func (r *PreferencesRepository) LoadRecentFiles() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.recent) == 0 {
		return []string{}, nil
	}
	return slices.Clone(r.recent), nil
}

// Clear removes all stored preferences.
func (r *PreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastFolder = ""
	r.recent = nil
	return nil
}

// Verify interface implementation
var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)
