package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/surface/raster"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/logger"
	"github.com/tejashwikalptaru/wavescope/internal/service"
)

func TestVisualizer_ShowsSurfacePixels(t *testing.T) {
	surface := raster.New(20, 10)
	surface.FillRect(0, 0, 20, 10, domain.White(1))
	v := NewVisualizer(surface)

	img := v.draw(20, 10)

	require.Equal(t, 20, img.Bounds().Dx())
	r, _, _, a := img.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestVisualizer_ResizesSurfaceWithoutCallback(t *testing.T) {
	surface := raster.New(10, 10)
	v := NewVisualizer(surface)

	img := v.draw(64, 32)

	w, h := surface.Size()
	assert.Equal(t, 64.0, w)
	assert.Equal(t, 32.0, h)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestVisualizer_ReportsSizeChangesOnce(t *testing.T) {
	surface := raster.New(10, 10)
	v := NewVisualizer(surface)

	var calls [][2]float64
	v.SetOnResize(func(w, h float64) {
		calls = append(calls, [2]float64{w, h})
		surface.Resize(w, h)
	})

	v.draw(100, 50)
	v.draw(100, 50)
	v.draw(0, 0)
	v.draw(120, 60)

	assert.Equal(t, [][2]float64{{100, 50}, {120, 60}}, calls)
}

func TestVisualizer_Renders(t *testing.T) {
	test.NewTempApp(t)

	v := NewVisualizer(raster.New(8, 8))
	w := test.NewTempWindow(t, v)
	w.Resize(fyne.NewSize(40, 20))

	assert.NotNil(t, test.WidgetRenderer(v))
	assert.Equal(t, fyne.NewSize(0, 0), v.MinSize())
}

func TestVisualizer_HighDensityCanvasGivesEngineLogicalSize(t *testing.T) {
	test.NewTempApp(t)

	surface := raster.New(8, 8)
	v := NewVisualizer(surface)
	win := test.NewTempWindow(t, v)
	win.SetPadded(false)
	c, ok := win.Canvas().(test.WindowlessCanvas)
	require.True(t, ok)
	c.SetScale(2)
	win.Resize(fyne.NewSize(400, 200))

	cfg := service.DefaultEngineConfig()
	engine, err := service.NewVisualizationService(logger.NewTestLogger(), cfg, service.Dependencies{
		Spectrum:  mock.NewUniformSpectrum(cfg.BufferLength, 255),
		Playback:  mock.NewPlayer(),
		Scheduler: scheduler.NewManualScheduler(),
		Clock:     scheduler.NewManualClock(0),
		Surface:   surface,
	})
	require.NoError(t, err)

	var reported [][2]float64
	v.SetOnResize(func(w, h float64) {
		reported = append(reported, [2]float64{w, h})
		require.NoError(t, engine.Resize(w, h))
	})

	size := v.Size()
	require.Positive(t, size.Width)
	pxW, pxH := int(size.Width*c.Scale()), int(size.Height*c.Scale())

	img := v.draw(pxW, pxH)

	require.NotEmpty(t, reported)
	last := reported[len(reported)-1]
	assert.InDelta(t, float64(size.Width), last[0], 1e-3)
	assert.InDelta(t, float64(size.Height), last[1], 1e-3)

	w, h := surface.Size()
	assert.InDelta(t, float64(size.Width), w, 1e-3, "the engine sees logical units")
	assert.InDelta(t, float64(size.Height), h, 1e-3)
	assert.Equal(t, 2.0, surface.Scale())
	assert.Equal(t, pxW, img.Bounds().Dx(), "pixels stay at device resolution")
	assert.Equal(t, pxH, img.Bounds().Dy())
}

func TestVisualizer_ScaleChangeIsReported(t *testing.T) {
	test.NewTempApp(t)

	surface := raster.New(8, 8)
	v := NewVisualizer(surface)
	v.Resize(fyne.NewSize(100, 50))

	var reported [][2]float64
	v.SetOnResize(func(w, h float64) {
		reported = append(reported, [2]float64{w, h})
		surface.Resize(w, h)
	})

	v.draw(100, 50)
	v.draw(200, 100)

	assert.Equal(t, [][2]float64{{100, 50}, {100, 50}}, reported)
	assert.Equal(t, 2.0, surface.Scale())
}
