// Package main is the entry point for wavescope, an audio-reactive visualizer.
//
// Build:
//
//	go build -o build/wavescope ./cmd
//
// Run:
//
//	./build/wavescope play song.mp3
//	./build/wavescope render song.mp3 --out frames --mode radial
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tejashwikalptaru/wavescope/internal/app"
	"github.com/tejashwikalptaru/wavescope/internal/config"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/logger"
)

var (
	configFile string
	mode       string
	particles  int
	seed       uint64
	width      int
	height     int
	frameRate  int
	logLevel   string
	useMock    bool
	outDir     string
	frames     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wavescope [file]",
		Short:         "audio-reactive visualizer",
		Version:       app.GetVersionInfo().FullString(),
		Args:          cobra.MaximumNArgs(1),
		RunE:          runPlay,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "visualization mode (bars, radial, wave, particles)")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", 0, "particle count")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "particle seed (0 picks a random one)")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "surface width")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "surface height")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", 0, "frame rate")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	playCmd := &cobra.Command{
		Use:   "play [file]",
		Short: "open the visualizer window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&useMock, "mock", false, "use a silent player and a synthetic spectrum")
	rootCmd.Flags().AddFlagSet(playCmd.Flags())

	renderCmd := &cobra.Command{
		Use:   "render [file]",
		Short: "render frames to PNG without a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&outDir, "out", "frames", "output directory")
	renderCmd.Flags().IntVar(&frames, "frames", 0, "frame limit (required without a file)")

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list visualization modes",
		Run:   listModes,
	}

	rootCmd.AddCommand(playCmd, renderCmd, modesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadSettings reads the config file, if any, and applies explicit flags on top.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	settings := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		settings.Mode = mode
	}
	if flags.Changed("particles") {
		settings.ParticleCount = particles
	}
	if flags.Changed("seed") {
		settings.Seed = seed
	}
	if flags.Changed("width") {
		settings.Width = width
	}
	if flags.Changed("height") {
		settings.Height = height
	}
	if flags.Changed("fps") {
		settings.FrameRate = frameRate
	}
	if flags.Changed("log-level") {
		settings.Log.Level = logLevel
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	cfg := app.DefaultConfig()
	cfg.Settings = settings
	cfg.UseMockAudio = useMock
	if len(args) == 1 {
		cfg.TrackPath = args[0]
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	return application.Run()
}

func runRender(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := app.RenderConfig{
		Settings: settings,
		OutDir:   outDir,
		Frames:   frames,
		Logger:   logger.NewLogger(settings.LoggerConfig()),
	}
	if len(args) == 1 {
		cfg.TrackPath = args[0]
	}

	result, err := app.Render(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames written to %s (%d skipped)\n",
		result.Track.DisplayName(), len(result.Files), outDir, result.Stats.Skipped)
	return nil
}

func listModes(cmd *cobra.Command, _ []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tMODE\tCONFIG NAME")
	for i, info := range domain.Modes() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, info.Name, info.Mode)
	}
	_ = w.Flush()
}
