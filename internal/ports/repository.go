// Package ports defines the repository interface for session preferences.
package ports

// PreferencesRepository holds the user's choices for the running session.
//
// Thread-safety: Implementations must be thread-safe.
type PreferencesRepository interface {
	// SaveLastFolder stores the directory of the last opened file.
	SaveLastFolder(path string) error

	// LoadLastFolder retrieves the stored directory, or "" when none was stored.
	LoadLastFolder() (string, error)

	// SaveRecentFiles stores the most recently opened files, newest first.
	SaveRecentFiles(paths []string) error

	// LoadRecentFiles retrieves the stored recent files, or an empty slice.
	LoadRecentFiles() ([]string, error)

	// Clear removes everything stored.
	Clear() error
}
