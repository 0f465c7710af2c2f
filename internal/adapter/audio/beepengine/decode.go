// Package beepengine plays audio files through the faiface/beep speaker and
// exposes the samples it plays for spectrum analysis.
package beepengine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

// SupportedExtensions lists the file extensions Decode accepts.
var SupportedExtensions = []string{".mp3", ".wav", ".flac"}

// IsSupported reports whether path has a decodable extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Decode opens path and returns a seekable stream. Closing the stream closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if !IsSupported(path) {
		return nil, beep.Format{}, domain.NewAudioError("decode", path, "unsupported file type", domain.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, domain.NewAudioError("decode", path, "cannot open file", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, domain.NewAudioError("decode", path, "decoder rejected file", err)
	}

	return streamer, format, nil
}
