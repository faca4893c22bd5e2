package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and the debug overlay")
	flagScene      = flag.String("scene", "", "Initial scene: terrain or obj")
	flagModel      = flag.String("model", "", "OBJ model for the object scene")
	flagSeed       = flag.Int64("seed", -1, "Terrain noise seed")
	flagRadius     = flag.Int("radius", -1, "Terrain grid radius in chunks")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMSAA       = flag.Int("msaa", -1, "MSAA sample count (0 = auto)")
	flagNoAudio    = flag.Bool("no-audio", false, "Disable audio cues")
	flagShaderDir  = flag.String("shader-dir", "", "Load and watch shaders from this directory")
	flagLogLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagLogFile    = flag.String("log-file", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.Overlay = true
	}
	if *flagScene != "" {
		cfg.Scene.Initial = *flagScene
	}
	if *flagModel != "" {
		cfg.Scene.Model = *flagModel
	}
	if *flagSeed >= 0 {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagRadius >= 0 {
		cfg.Terrain.GridRadius = *flagRadius
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMSAA >= 0 {
		cfg.Graphics.MSAA = *flagMSAA
	}
	if *flagNoAudio {
		cfg.Audio.Enabled = false
	}
	if *flagShaderDir != "" {
		cfg.Debug.ShaderDir = *flagShaderDir
	}
	if *flagLogLevel != "" {
		cfg.Logging.Level = *flagLogLevel
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
