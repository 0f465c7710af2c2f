package beepengine

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

// readTrack builds the track description for path. Tags are best effort: a file
// without readable tags falls back to its file name.
func readTrack(path string, duration time.Duration) domain.Track {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	track := domain.Track{
		Path:     path,
		Title:    strings.TrimSuffix(base, ext),
		Format:   strings.TrimPrefix(strings.ToLower(ext), "."),
		Duration: duration,
	}

	f, err := os.Open(path)
	if err != nil {
		return track
	}
	defer f.Close()

	md, err := tag.ReadFrom(f)
	if err != nil {
		return track
	}

	if title := strings.TrimSpace(md.Title()); title != "" {
		track.Title = title
	}
	track.Artist = strings.TrimSpace(md.Artist())
	track.Album = strings.TrimSpace(md.Album())

	return track
}
