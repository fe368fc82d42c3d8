package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pushon/game/internal/actor"
	"github.com/pushon/game/internal/config"
	"github.com/pushon/game/internal/game"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/game.toml"
	if p := os.Getenv("PUSHON_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the game config")
	headless := flag.Bool("headless", false, "simulate without a terminal")
	frames := flag.Int("frames", 3600, "frames to simulate in headless mode")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *headless {
		// nothing else writes to the terminal
		cfg.Logging.File = ""
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()))

	if *headless {
		return runHeadless(cfg, *frames, log)
	}
	return runTerminal(cfg, log)
}

func runHeadless(cfg *config.Config, frames int, log *zap.Logger) error {
	g, err := game.New(cfg, nil, nil, log)
	if err != nil {
		return err
	}
	defer g.Close()

	log.Info("headless run", zap.Int("frames", frames), zap.Duration("tick", cfg.Game.TickRate))
	for i := 0; i < frames && !g.Over(); i++ {
		g.Step(cfg.Game.TickRate)
	}
	g.Summary()
	return nil
}

func runTerminal(cfg *config.Config, log *zap.Logger) error {
	screen, err := render.NewScreen(geom.V(cfg.Game.Width, cfg.Game.Height))
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	input := render.NewInput(screen.ToWorld)
	ctrls := []actor.Controller{input}
	g, err := game.New(cfg, screen, ctrls, log)
	if err != nil {
		return err
	}
	defer g.Close()
	defer g.Summary()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()
	events := screen.Events()
	last := time.Now()

	log.Info("game loop started", zap.Duration("tick", cfg.Game.TickRate))
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Resize()
				continue
			}
			input.Handle(ev)
			if input.Quit() {
				log.Info("player quit")
				return nil
			}
		case now := <-ticker.C:
			g.Step(now.Sub(last))
			last = now
			if g.Over() {
				log.Info("all players down")
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapCfg.Build()
}
