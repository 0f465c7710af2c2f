package fyne

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/res"
)

// APPNAME is the window title.
const APPNAME = "wavescope"

// MainWindow is the main UI window implementing the UIView interface.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
//
// View methods may be called from any goroutine; they hop to the UI goroutine
// with fyne.Do.
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window
	logger *slog.Logger

	// UI components
	visualizer   *widgets.Visualizer
	openButton   *widget.Button
	playButton   *widget.Button
	reseedButton *widget.Button
	modeSelect   *widget.Select
	songInfo     *widget.Label
	status       *widget.Label
	currentTime  *widget.Label
	endTime      *widget.Label
	progress     *widget.ProgressBar
	recentMenu   *fyneapp.MenuItem

	// Lifecycle management
	closeOnce sync.Once

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates the main window around visualizer.
func NewMainWindow(app fyneapp.App, logger *slog.Logger, visualizer *widgets.Visualizer, width, height float32) *MainWindow {
	w := &MainWindow{
		app:        app,
		logger:     logger.With(slog.String("component", "main_window")),
		visualizer: visualizer,
	}

	w.window = app.NewWindow(APPNAME)
	w.buildUI()
	w.window.Resize(fyneapp.NewSize(width, height))

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
	w.addShortcuts()
}

func (w *MainWindow) buildUI() {
	w.openButton = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), nil)
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.reseedButton = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), nil)

	names := make([]string, 0, domain.ModeCount)
	for _, info := range domain.Modes() {
		names = append(names, info.Name)
	}
	w.modeSelect = widget.NewSelect(names, nil)

	w.songInfo = widget.NewLabel("")
	w.songInfo.Truncation = fyneapp.TextTruncateEllipsis
	w.songInfo.TextStyle = fyneapp.TextStyle{Bold: true}
	w.status = widget.NewLabel("")

	w.progress = widget.NewProgressBar()
	w.progress.TextFormatter = func() string { return "" }
	w.currentTime = widget.NewLabel("00:00")
	w.endTime = widget.NewLabel("00:00")

	buttons := container.NewHBox(w.openButton, w.playButton, w.modeSelect, w.reseedButton)
	top := container.NewBorder(nil, nil, buttons, w.status, w.songInfo)
	bottom := container.NewBorder(nil, nil, w.currentTime, w.endTime, w.progress)

	w.window.SetContent(container.NewBorder(top, bottom, nil, nil, w.visualizer))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	w.openButton.OnTapped = w.handleOpenFile
	w.playButton.OnTapped = w.presenter.OnPlayClicked
	w.reseedButton.OnTapped = w.presenter.OnReseedClicked
	w.modeSelect.OnChanged = w.presenter.OnModeSelected
}

func (w *MainWindow) createMenu() []*fyneapp.Menu {
	openFile := fyneapp.NewMenuItem("Open", w.handleOpenFile)
	w.recentMenu = fyneapp.NewMenuItem("Open Recent", nil)
	w.recentMenu.ChildMenu = fyneapp.NewMenu("")
	w.recentMenu.Disabled = true
	exit := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})
	about := fyneapp.NewMenuItem("About", func() {
		dialog.ShowCustom("About "+APPNAME, "Close", widget.NewRichTextFromMarkdown(res.AboutContent), w.window)
	})

	return []*fyneapp.Menu{
		fyneapp.NewMenu("File", openFile, w.recentMenu, fyneapp.NewMenuItemSeparator(), exit),
		fyneapp.NewMenu("Help", about),
	}
}

func (w *MainWindow) handleOpenFile() {
	if w.presenter == nil {
		return
	}

	d := NewFileDialog(w.window, w.openFile, w.logger)
	d.SetStartFolder(w.presenter.LastFolder())
	d.Show()
}

func (w *MainWindow) openFile(path string) {
	if w.presenter == nil {
		return
	}
	if err := w.presenter.OnFileOpened(path); err != nil {
		w.logger.Warn("failed to open file", slog.String("path", path), slog.Any("error", err))
	}
}

// addShortcuts binds single-key shortcuts on the window canvas.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().SetOnTypedRune(func(r rune) {
		switch {
		case r == ' ':
			w.presenter.OnPlayClicked()
		case r == 'm' || r == 'M':
			w.presenter.OnNextModeRequested()
		case r == 'r' || r == 'R':
			w.presenter.OnReseedClicked()
		case r >= '1' && int(r-'1') < int(domain.ModeCount):
			w.presenter.OnModeSelected(domain.Mode(r - '1').String())
		}
	})
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// SetOnClosed registers a callback run when the window is closed.
func (w *MainWindow) SetOnClosed(fn func()) {
	w.window.SetOnClosed(fn)
}

// Close closes the window. It's safe to call multiple times.
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation

// SetPlayState updates the play/pause button icon.
func (w *MainWindow) SetPlayState(playing bool) {
	fyneapp.Do(func() {
		if playing {
			w.playButton.SetIcon(theme.MediaPauseIcon())
		} else {
			w.playButton.SetIcon(theme.MediaPlayIcon())
		}
	})
}

// SetTrackInfo updates the displayed track information.
func (w *MainWindow) SetTrackInfo(title, artist string) {
	var text string
	switch {
	case artist != "" && title != "":
		text = fmt.Sprintf("%s - %s", artist, title)
	case title != "":
		text = title
	default:
		text = "No track loaded"
	}
	fyneapp.Do(func() {
		w.songInfo.SetText(text)
		w.window.SetTitle(fmt.Sprintf("%s - %s", APPNAME, text))
	})
}

// SetTotalTime updates the track duration display.
func (w *MainWindow) SetTotalTime(seconds float64) {
	fyneapp.Do(func() {
		w.endTime.SetText(clockText(seconds))
	})
}

// SetProgress updates the progress bar.
func (w *MainWindow) SetProgress(position, duration float64) {
	if duration <= 0 {
		return
	}
	fyneapp.Do(func() {
		w.progress.SetValue(math.Min(position/duration, 1))
	})
}

// SetCurrentTime updates the playback position display.
func (w *MainWindow) SetCurrentTime(seconds float64) {
	fyneapp.Do(func() {
		w.currentTime.SetText(clockText(seconds))
	})
}

// SetMode selects mode in the mode picker without re-triggering it.
func (w *MainWindow) SetMode(mode domain.Mode) {
	name := modeName(mode)
	fyneapp.Do(func() {
		if w.modeSelect.Selected == name {
			return
		}
		handler := w.modeSelect.OnChanged
		w.modeSelect.OnChanged = nil
		w.modeSelect.SetSelected(name)
		w.modeSelect.OnChanged = handler
	})
}

// SetStatus updates the status text.
func (w *MainWindow) SetStatus(text string) {
	fyneapp.Do(func() {
		w.status.SetText(text)
	})
}

// SetRecentFiles rebuilds the Open Recent submenu, newest first.
func (w *MainWindow) SetRecentFiles(paths []string) {
	items := make([]*fyneapp.MenuItem, 0, len(paths))
	for _, path := range paths {
		items = append(items, fyneapp.NewMenuItem(filepath.Base(path), func() {
			w.openFile(path)
		}))
	}
	fyneapp.Do(func() {
		if w.recentMenu == nil {
			return
		}
		w.recentMenu.ChildMenu.Items = items
		w.recentMenu.Disabled = len(items) == 0
		if menu := w.window.MainMenu(); menu != nil {
			menu.Refresh()
		}
	})
}

// RefreshVisualizer repaints the visualizer from its surface.
func (w *MainWindow) RefreshVisualizer() {
	fyneapp.Do(w.visualizer.Refresh)
}

// ShowNotification displays an information dialog on the window.
func (w *MainWindow) ShowNotification(title, message string) {
	fyneapp.Do(func() {
		dialog.ShowInformation(title, message, w.window)
	})
}

func clockText(seconds float64) string {
	seconds = math.Max(seconds, 0)
	return fmt.Sprintf("%.2d:%.2d", int(seconds/60), int(math.Mod(seconds, 60)))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
