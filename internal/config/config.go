// Package config handles playground configuration loading and management.
package config

// Config holds all playground settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Terrain  TerrainConfig  `yaml:"terrain" toml:"terrain"`
	Controls ControlsConfig `yaml:"controls" toml:"controls"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
	Debug    DebugConfig    `yaml:"debug" toml:"debug"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width" toml:"width"`
	Height     int  `yaml:"height" toml:"height"`
	Fullscreen bool `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool `yaml:"vsync" toml:"vsync"`
	// MSAA is the requested sample count. 0 picks the best of 4, 2, 1.
	MSAA int `yaml:"msaa" toml:"msaa"`
	// DisableLineMode hides line polygon mode from the device so the
	// wireframe path degrades the way it does on hardware without it.
	DisableLineMode bool `yaml:"disable_line_mode" toml:"disable_line_mode"`
}

// SceneConfig selects the scene shown at startup.
type SceneConfig struct {
	Initial string `yaml:"initial" toml:"initial"` // "terrain" or "obj"
	Model   string `yaml:"model" toml:"model"`     // OBJ path, empty for the bundled model
}

// TerrainConfig holds procedural terrain parameters.
type TerrainConfig struct {
	Seed        int64   `yaml:"seed" toml:"seed"`
	GridRadius  int     `yaml:"grid_radius" toml:"grid_radius"`
	Resolution  int     `yaml:"resolution" toml:"resolution"`
	ChunkWidth  float32 `yaml:"chunk_width" toml:"chunk_width"`
	ZScale      float32 `yaml:"z_scale" toml:"z_scale"`
	NoiseScale  float64 `yaml:"noise_scale" toml:"noise_scale"`
	Octaves     int32   `yaml:"octaves" toml:"octaves"`
	Persistence float64 `yaml:"persistence" toml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity" toml:"lacunarity"`
}

// ControlsConfig holds the initial control panel values.
type ControlsConfig struct {
	Camera    [3]float32 `yaml:"camera" toml:"camera"`
	Zoom      float32    `yaml:"zoom" toml:"zoom"`
	Wireframe bool       `yaml:"wireframe" toml:"wireframe"`
}

// AudioConfig holds audio cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	Overlay          bool   `yaml:"overlay" toml:"overlay"`
	ShaderDir        string `yaml:"shader_dir" toml:"shader_dir"`
	ScreenshotDir    string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format" toml:"screenshot_format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       0,
		},
		Scene: SceneConfig{
			Initial: "terrain",
		},
		Terrain: TerrainConfig{
			Seed:        0,
			GridRadius:  2,
			Resolution:  8,
			ChunkWidth:  100,
			ZScale:      5,
			NoiseScale:  0.2,
			Octaves:     6,
			Persistence: 0.5,
			Lacunarity:  2,
		},
		Controls: ControlsConfig{
			Zoom: 1,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.8,
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
