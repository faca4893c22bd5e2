package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.MSAA != 0 {
		t.Errorf("expected auto msaa (0), got %d", cfg.Graphics.MSAA)
	}

	if cfg.Scene.Initial != "terrain" {
		t.Errorf("expected initial scene 'terrain', got %s", cfg.Scene.Initial)
	}

	if cfg.Terrain.Resolution != 8 {
		t.Errorf("expected resolution 8, got %d", cfg.Terrain.Resolution)
	}
	if cfg.Terrain.ChunkWidth != 100 {
		t.Errorf("expected chunk width 100, got %f", cfg.Terrain.ChunkWidth)
	}
	if cfg.Terrain.ZScale != 5 {
		t.Errorf("expected z scale 5, got %f", cfg.Terrain.ZScale)
	}
	if cfg.Terrain.NoiseScale != 0.2 {
		t.Errorf("expected noise scale 0.2, got %f", cfg.Terrain.NoiseScale)
	}

	if cfg.Controls.Zoom != 1 {
		t.Errorf("expected zoom 1, got %f", cfg.Controls.Zoom)
	}
	if cfg.Audio.Enabled {
		t.Error("expected audio to be disabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  msaa: 2

scene:
  initial: obj

terrain:
  seed: 42
  grid_radius: 4
  resolution: 16

controls:
  camera: [0.25, 0, -0.5]
  zoom: 2.5
  wireframe: true

logging:
  level: "debug"
  log_file: "playground.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.MSAA != 2 {
		t.Errorf("expected msaa 2, got %d", cfg.Graphics.MSAA)
	}
	if cfg.Scene.Initial != "obj" {
		t.Errorf("expected initial scene obj, got %s", cfg.Scene.Initial)
	}
	if cfg.Terrain.Seed != 42 || cfg.Terrain.GridRadius != 4 || cfg.Terrain.Resolution != 16 {
		t.Errorf("terrain not loaded: %+v", cfg.Terrain)
	}
	// Fields absent from the file keep their defaults
	if cfg.Terrain.ChunkWidth != 100 {
		t.Errorf("expected default chunk width to survive, got %f", cfg.Terrain.ChunkWidth)
	}
	if cfg.Controls.Camera != [3]float32{0.25, 0, -0.5} {
		t.Errorf("unexpected camera %v", cfg.Controls.Camera)
	}
	if cfg.Controls.Zoom != 2.5 || !cfg.Controls.Wireframe {
		t.Errorf("controls not loaded: %+v", cfg.Controls)
	}
	if cfg.Logging.LogFile != "playground.log" {
		t.Errorf("expected log file 'playground.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromTOMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
[graphics]
width = 800
height = 600

[terrain]
seed = 7
noise_scale = 0.1

[debug]
screenshot_format = "bmp"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load toml config: %v", err)
	}

	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Terrain.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Terrain.Seed)
	}
	if cfg.Terrain.NoiseScale != 0.1 {
		t.Errorf("expected noise scale 0.1, got %f", cfg.Terrain.NoiseScale)
	}
	if cfg.Debug.ScreenshotFormat != "bmp" {
		t.Errorf("expected bmp screenshots, got %s", cfg.Debug.ScreenshotFormat)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[graphics]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path != "./config.toml" {
		t.Errorf("expected ./config.toml, got %q", path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"obj scene", func(c *Config) { c.Scene.Initial = "obj" }, false},
		{"unknown scene", func(c *Config) { c.Scene.Initial = "space" }, true},
		{"msaa 3", func(c *Config) { c.Graphics.MSAA = 3 }, true},
		{"msaa 4", func(c *Config) { c.Graphics.MSAA = 4 }, false},
		{"zero resolution", func(c *Config) { c.Terrain.Resolution = 0 }, true},
		{"negative radius", func(c *Config) { c.Terrain.GridRadius = -1 }, true},
		{"zero persistence", func(c *Config) { c.Terrain.Persistence = 0 }, true},
		{"negative persistence", func(c *Config) { c.Terrain.Persistence = -0.5 }, true},
		{"zero lacunarity", func(c *Config) { c.Terrain.Lacunarity = 0 }, true},
		{"zero octaves", func(c *Config) { c.Terrain.Octaves = 0 }, true},
		{"zoom too small", func(c *Config) { c.Controls.Zoom = 0.05 }, true},
		{"zoom too large", func(c *Config) { c.Controls.Zoom = 11 }, true},
		{"jpeg screenshots", func(c *Config) { c.Debug.ScreenshotFormat = "jpeg" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.Overlay {
					t.Error("expected overlay to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "scene flag",
			setup: func() { *flagScene = "obj" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Initial != "obj" {
					t.Errorf("expected scene obj, got %s", cfg.Scene.Initial)
				}
			},
			teardown: func() { *flagScene = "" },
		},
		{
			name:  "seed zero overrides",
			setup: func() { *flagSeed = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Terrain.Seed)
				}
			},
			teardown: func() { *flagSeed = -1 },
		},
		{
			name:  "msaa flag",
			setup: func() { *flagMSAA = 1 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.MSAA != 1 {
					t.Errorf("expected msaa 1, got %d", cfg.Graphics.MSAA)
				}
			},
			teardown: func() { *flagMSAA = -1 },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "shader dir flag",
			setup: func() { *flagShaderDir = "/tmp/shaders" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Debug.ShaderDir != "/tmp/shaders" {
					t.Errorf("expected shader dir override, got %s", cfg.Debug.ShaderDir)
				}
			},
			teardown: func() { *flagShaderDir = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  initial: moon\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for unknown scene")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Terrain.Seed = 99
			cfg.Scene.Initial = "obj"
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("reload: %v", err)
			}
			if loaded.Terrain.Seed != 99 || loaded.Scene.Initial != "obj" {
				t.Errorf("round trip lost values: seed=%d scene=%s", loaded.Terrain.Seed, loaded.Scene.Initial)
			}
		})
	}
}
