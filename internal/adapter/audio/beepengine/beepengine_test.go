package beepengine

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/spectrum"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

// counter streams 1, 2, 3, ... on both channels.
func counter() beep.Streamer {
	next := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			next++
			samples[i] = [2]float64{next, next}
		}
		return len(samples), true
	})
}

func sine(freq, amplitude float64, rate beep.SampleRate) beep.Streamer {
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for j := range samples {
			v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
			samples[j] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	})
}

func writeWAV(t *testing.T, name string, s beep.Streamer, rate beep.SampleRate, length time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(rate.N(length), s), format))
	return path
}

func TestTap_KeepsLatestSamplesInOrder(t *testing.T) {
	tap := NewTap(4)
	tap.SetSource(counter())

	buf := make([][2]float64, 6)
	n, ok := tap.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 6, n)

	assert.Equal(t, []float64{3, 4, 5, 6}, tap.Samples(10))
	assert.Equal(t, []float64{5, 6}, tap.Samples(2))
	assert.Equal(t, 6, tap.Streamed())
}

func TestTap_PartialRing(t *testing.T) {
	tap := NewTap(8)
	tap.SetSource(counter())

	_, _ = tap.Stream(make([][2]float64, 3))

	assert.Equal(t, []float64{1, 2, 3}, tap.Samples(8))
}

func TestTap_MixesToMono(t *testing.T) {
	tap := NewTap(2)
	tap.SetSource(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 0}
		}
		return len(samples), true
	}))

	_, _ = tap.Stream(make([][2]float64, 2))

	assert.Equal(t, []float64{0.5, 0.5}, tap.Samples(2))
}

func TestTap_NoSource(t *testing.T) {
	tap := NewTap(0)

	n, ok := tap.Stream(make([][2]float64, 4))

	assert.Zero(t, n)
	assert.False(t, ok)
	assert.NoError(t, tap.Err())
	assert.Empty(t, tap.Samples(16))
}

func TestTap_SetSourceForgetsHistory(t *testing.T) {
	tap := NewTap(4)
	tap.SetSource(counter())
	_, _ = tap.Stream(make([][2]float64, 4))

	tap.SetSource(counter())

	assert.Empty(t, tap.Samples(4))
	assert.Zero(t, tap.Streamed())
}

func TestDecode_RejectsUnknownExtension(t *testing.T) {
	_, _, err := Decode("cover.png")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	var audioErr *domain.AudioError
	require.True(t, errors.As(err, &audioErr))
	assert.Equal(t, "decode", audioErr.Op)
}

func TestDecode_MissingFile(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "missing.wav"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.MP3"))
	assert.True(t, IsSupported("/x/y.flac"))
	assert.True(t, IsSupported("song.wav"))
	assert.False(t, IsSupported("song.ogg"))
	assert.False(t, IsSupported("noext"))
}

func TestOffline_FollowsTheClock(t *testing.T) {
	const rate = beep.SampleRate(8000)
	path := writeWAV(t, "tone.wav", sine(1000, 0.5, rate), rate, 500*time.Millisecond)

	off, err := OpenOffline(path, 1024)
	require.NoError(t, err)
	defer off.Close()

	track := off.Track()
	assert.Equal(t, "tone", track.Title)
	assert.Equal(t, "wav", track.Format)
	assert.Equal(t, 500*time.Millisecond, track.Duration)

	assert.True(t, off.IsPlaying())
	off.AdvanceTo(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, off.Position())
	assert.Len(t, off.Tap().Samples(256), 256)

	off.AdvanceTo(50 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, off.Position(), "time never runs backwards")

	off.AdvanceTo(time.Second)
	assert.False(t, off.IsPlaying())
	assert.Equal(t, 500*time.Millisecond, off.Position())
}

func TestOffline_FeedsTheAnalyser(t *testing.T) {
	const rate = beep.SampleRate(8000)
	// 1kHz at 8kHz lands exactly on bin 32 of a 256-point FFT.
	path := writeWAV(t, "quiet.wav", sine(1000, 0.005, rate), rate, 200*time.Millisecond)

	off, err := OpenOffline(path, 1024)
	require.NoError(t, err)
	defer off.Close()

	cfg := spectrum.DefaultConfig()
	cfg.Smoothing = 0
	analyser, err := spectrum.NewAnalyser(off.Tap(), cfg)
	require.NoError(t, err)

	off.AdvanceTo(100 * time.Millisecond)
	bins, err := analyser.Sample()
	require.NoError(t, err)

	peak := 0
	for i := range bins {
		if bins[i] > bins[peak] {
			peak = i
		}
	}
	assert.Equal(t, 32, peak)
}

func TestReadTrack_FallsBackToFileName(t *testing.T) {
	track := readTrack(filepath.Join(t.TempDir(), "Night Drive.flac"), time.Minute)

	assert.Equal(t, "Night Drive", track.Title)
	assert.Equal(t, "flac", track.Format)
	assert.Empty(t, track.Artist)
	assert.Equal(t, time.Minute, track.Duration)
}
