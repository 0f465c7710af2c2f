package fyne

import (
	"log/slog"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/audio/beepengine"
)

// FileDialog is a helper for choosing an audio file.
type FileDialog struct {
	window   fyneapp.Window
	callback func(string)
	logger   *slog.Logger
	startDir string
}

// NewFileDialog creates a new file dialog limited to playable extensions.
func NewFileDialog(window fyneapp.Window, callback func(string), logger *slog.Logger) *FileDialog {
	return &FileDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// SetStartFolder opens the dialog in dir. An empty or unreadable dir is ignored.
func (d *FileDialog) SetStartFolder(dir string) {
	d.startDir = dir
}

// Show displays the file dialog.
func (d *FileDialog) Show() {
	open := dialog.NewFileOpen(func(reader fyneapp.URIReadCloser, err error) {
		if err != nil {
			d.logger.Error("file dialog error", slog.Any("error", err))
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()

		if d.callback != nil {
			d.callback(reader.URI().Path())
		}
	}, d.window)
	open.SetFilter(storage.NewExtensionFileFilter(beepengine.SupportedExtensions))
	if d.startDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(d.startDir)); err == nil {
			open.SetLocation(lister)
		}
	}
	open.Show()
}
