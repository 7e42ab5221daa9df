package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/config"
	"github.com/gavinmorrow/Pollywog/logging"
	"github.com/gavinmorrow/Pollywog/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default "+config.DefaultPath+" if present)")
	levelName := flag.String("level", "", "level descriptor in levels/ (overrides the config)")
	debug := flag.Bool("debug", false, "draw collider outlines and tick info")
	watch := flag.Bool("watch", false, "reload prefabs and levels from disk when they change")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9090")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// No logger yet; the config decides its level and format.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	if *levelName != "" {
		cfg.Game.Level = *levelName
	}
	if *debug {
		cfg.Debug.Physics = true
	}
	if *watch {
		cfg.Debug.Watch = true
	}
	if *metricsAddr != "" {
		cfg.Debug.MetricsAddr = *metricsAddr
	}

	base, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	session := logging.NewSessionID()
	logger := logging.WithSession(base, session)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rec *metrics.Recorder
	if cfg.Debug.MetricsAddr != "" {
		rec = metrics.New(session)
		go func() {
			if err := rec.Serve(ctx, cfg.Debug.MetricsAddr, logger.Named("metrics")); err != nil {
				logger.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(cfg.Simulation.TPS)

	game, err := NewGame(cfg, logger, rec)
	if err != nil {
		logger.Fatal("create game", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game exited", zap.Error(err))
		return
	}
	logger.Info("bye")
}

// loadConfig reads an explicit path strictly and the default path leniently.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(config.DefaultPath)
}
