// Package app holds the startup steps both playground binaries share:
// configuration, logging, the GL device and the audio cues.
package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/assets"
	"github.com/Faultbox/terrain-playground/internal/config"
	"github.com/Faultbox/terrain-playground/internal/engine/audio"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu/glgpu"
	"github.com/Faultbox/terrain-playground/internal/logger"
	"github.com/Faultbox/terrain-playground/internal/playground"
)

// Title is the window title prefix.
const Title = "Terrain Playground"

// Start parses flags, loads the configuration and initialises the logger.
// Errors before the logger exists go to stderr and exit.
func Start(banner string) *config.Config {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== " + banner + " ===")
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg
}

// NewDevice wraps the current GL context, hiding line rasterization when
// the config asks for it.
func NewDevice(cfg *config.Config) (*glgpu.Device, error) {
	var disable gpu.Feature
	if cfg.Graphics.DisableLineMode {
		disable |= gpu.FeaturePolygonModeLine
	}
	return glgpu.NewDevice(glgpu.Options{Disable: disable, Logger: logger.Named("gpu")})
}

// Cues opens the audio device and loads the bundled cue. It returns nil
// when audio is disabled or unavailable; the playground runs silent then.
func Cues(cfg *config.Config) *audio.Manager {
	if !cfg.Audio.Enabled {
		return nil
	}
	log := logger.Named("audio")

	data, err := assets.NewManager().Load(assets.CueSound)
	if err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return nil
	}
	m := audio.New()
	if err := m.Load(assets.CueSound, data); err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return nil
	}
	if err := m.Init(); err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return nil
	}
	m.SetVolume(cfg.Audio.Volume)
	return m
}

// Deps assembles the runner collaborators for a GL frontend.
func Deps(dev *glgpu.Device, surface *glgpu.Surface, cues *audio.Manager, keyboard bool) playground.Deps {
	d := playground.Deps{
		Device:           dev,
		Surface:          surface,
		Pixels:           surface,
		Logger:           logger.Named("app"),
		KeyboardControls: keyboard,
	}
	if cues != nil {
		d.Audio = cues
	}
	return d
}
