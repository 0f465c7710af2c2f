package mock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/logger"
)

type fixedClock time.Duration

func (c fixedClock) Now() time.Duration { return time.Duration(c) }

func TestPlayer_LoadPlayPause(t *testing.T) {
	p := NewPlayer()
	p.SetLogger(logger.NewTestLogger())

	track, err := p.Load("/music/Artist - Song.MP3")
	require.NoError(t, err)
	assert.Equal(t, "Artist - Song", track.Title)
	assert.Equal(t, "mp3", track.Format)
	assert.Equal(t, DefaultTrackDuration, p.Duration())
	assert.False(t, p.IsPlaying())

	require.NoError(t, p.Play())
	assert.True(t, p.IsPlaying())

	require.NoError(t, p.Pause())
	assert.False(t, p.IsPlaying())
}

func TestPlayer_RejectsUnsupportedFormat(t *testing.T) {
	p := NewPlayer()

	_, err := p.Load("notes.txt")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	var audioErr *domain.AudioError
	require.True(t, errors.As(err, &audioErr))
	assert.Equal(t, "load", audioErr.Op)
}

func TestPlayer_PlayWithoutTrack(t *testing.T) {
	p := NewPlayer()
	assert.ErrorIs(t, p.Play(), domain.ErrNoTrackLoaded)
	assert.ErrorIs(t, p.Pause(), domain.ErrNoTrackLoaded)
}

func TestPlayer_FailureInjection(t *testing.T) {
	p := NewPlayer()

	p.SetFailLoad(true)
	_, err := p.Load("a.wav")
	assert.Error(t, err)

	p.SetFailLoad(false)
	_, err = p.Load("a.wav")
	require.NoError(t, err)

	p.SetFailPlay(true)
	assert.Error(t, p.Play())
	assert.False(t, p.IsPlaying())
}

func TestPlayer_Close(t *testing.T) {
	p := NewPlayer()
	_, err := p.Load("a.flac")
	require.NoError(t, err)
	require.NoError(t, p.Play())
	p.SetPosition(time.Second)
	assert.Equal(t, time.Second, p.Position())

	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
	assert.False(t, p.IsPlaying())
	assert.Zero(t, p.Duration())
}

func TestSpectrum_ReturnsCopies(t *testing.T) {
	s := NewSpectrum([]float64{1, 2, 3})

	a, err := s.Sample()
	require.NoError(t, err)
	a[0] = 99

	b, err := s.Sample()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, b)
	assert.Equal(t, 2, s.Calls())
}

func TestSpectrum_ErrorInjection(t *testing.T) {
	s := NewUniformSpectrum(4, 10)
	boom := errors.New("analyser offline")

	s.SetError(boom)
	_, err := s.Sample()
	assert.ErrorIs(t, err, boom)

	s.SetError(nil)
	bins, err := s.Sample()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10, 10, 10}, bins)
}

func TestSyntheticSpectrum_StaysInRangeAndMoves(t *testing.T) {
	a, err := NewSyntheticSpectrum(64, fixedClock(0)).Sample()
	require.NoError(t, err)
	b, err := NewSyntheticSpectrum(64, fixedClock(130*time.Millisecond)).Sample()
	require.NoError(t, err)

	require.Len(t, a, 64)
	for i := range a {
		assert.GreaterOrEqual(t, a[i], 0.0)
		assert.LessOrEqual(t, a[i], 255.0)
	}
	assert.NotEqual(t, a, b)
	assert.Greater(t, a[0], a[63], "energy is concentrated in low bins")
}
