package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/audio/beepengine"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/spectrum"
	"github.com/tejashwikalptaru/wavescope/internal/adapter/surface/raster"
	"github.com/tejashwikalptaru/wavescope/internal/config"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
	"github.com/tejashwikalptaru/wavescope/internal/service"
)

// ErrNoFrameLimit is returned when a synthetic render has no frame limit.
var ErrNoFrameLimit = errors.New("a frame limit is required without a track")

// RenderConfig describes a headless render.
type RenderConfig struct {
	Settings  *config.Config
	TrackPath string // optional; without it a synthetic spectrum is drawn
	OutDir    string
	Frames    int // 0 renders until the track ends
	Logger    *slog.Logger
}

// RenderResult summarises a finished headless render.
type RenderResult struct {
	SessionID string
	Track     domain.Track
	Files     []string
	Stats     domain.FrameStats
}

// Render drives the engine on a virtual clock and writes every drawn frame to
// OutDir as a numbered PNG. Frames are spaced 1/FrameRate apart in track time.
func Render(ctx context.Context, cfg RenderConfig) (RenderResult, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Settings.Validate(); err != nil {
		return RenderResult{}, err
	}
	engineCfg, err := cfg.Settings.Engine()
	if err != nil {
		return RenderResult{}, err
	}
	if cfg.TrackPath == "" && cfg.Frames <= 0 {
		return RenderResult{}, ErrNoFrameLimit
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return RenderResult{}, fmt.Errorf("create output dir: %w", err)
	}

	clock := scheduler.NewManualClock(0)
	frames := scheduler.NewManualScheduler()
	surface := raster.New(cfg.Settings.Width, cfg.Settings.Height)

	var (
		result   RenderResult
		source   ports.SpectrumSource
		playback ports.PlaybackState
		offline  *beepengine.Offline
	)
	if cfg.TrackPath == "" {
		player := mock.NewPlayer()
		player.SetPlaying(true)
		playback = player
		source = mock.NewSyntheticSpectrum(engineCfg.BufferLength, clock)
		result.Track = domain.Track{Title: "synthetic"}
	} else {
		offline, err = beepengine.OpenOffline(cfg.TrackPath, max(beepengine.DefaultTapSize, 2*engineCfg.BufferLength))
		if err != nil {
			return RenderResult{}, err
		}
		defer offline.Close()

		analyser, err := spectrum.NewAnalyser(offline.Tap(), cfg.Settings.AnalyserConfig())
		if err != nil {
			return RenderResult{}, err
		}
		playback = offline
		source = analyser
		result.Track = offline.Track()
	}

	engine, err := service.NewVisualizationService(log, engineCfg, service.Dependencies{
		Spectrum:  source,
		Playback:  playback,
		Scheduler: frames,
		Clock:     clock,
		Surface:   surface,
	})
	if err != nil {
		return RenderResult{}, err
	}
	if err := engine.Start(); err != nil {
		return RenderResult{}, err
	}
	defer engine.Stop()

	result.SessionID = engine.SessionID()
	log = log.With(slog.String("component", "render"), slog.String("session_id", result.SessionID))
	log.Info("rendering", slog.String("track", result.Track.DisplayName()), slog.String("out", cfg.OutDir))

	interval := time.Second / time.Duration(cfg.Settings.FrameRate)
	for engine.State() == domain.StateRunning && (cfg.Frames <= 0 || len(result.Files) < cfg.Frames) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		now := clock.Advance(interval)
		if offline != nil {
			offline.AdvanceTo(now)
		}

		before := engine.Stats().Rendered
		frames.Step(now)
		if engine.Stats().Rendered == before {
			continue
		}

		path := filepath.Join(cfg.OutDir, fmt.Sprintf("frame_%05d.png", len(result.Files)))
		if err := writeFrame(path, surface); err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
	}

	result.Stats = engine.Stats()
	log.Info("render finished",
		slog.Int("files", len(result.Files)),
		slog.Uint64("skipped", result.Stats.Skipped))
	return result, nil
}

func writeFrame(path string, surface *raster.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := surface.WritePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return f.Close()
}
