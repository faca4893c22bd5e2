package config

import (
	"errors"
	"fmt"
)

// Validate reports every setting that cannot be used, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width < 0 || c.Graphics.Height < 0 {
		errs = append(errs, fmt.Errorf("graphics: negative window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	switch c.Graphics.MSAA {
	case 0, 1, 2, 4, 8:
	default:
		errs = append(errs, fmt.Errorf("graphics: msaa must be 0, 1, 2, 4 or 8, got %d", c.Graphics.MSAA))
	}

	switch c.Scene.Initial {
	case "terrain", "obj":
	default:
		errs = append(errs, fmt.Errorf("scene: unknown initial scene %q", c.Scene.Initial))
	}

	t := c.Terrain
	if t.Resolution < 1 {
		errs = append(errs, fmt.Errorf("terrain: resolution must be at least 1, got %d", t.Resolution))
	}
	if t.GridRadius < 0 {
		errs = append(errs, fmt.Errorf("terrain: negative grid radius %d", t.GridRadius))
	}
	if t.ChunkWidth <= 0 || t.NoiseScale <= 0 {
		errs = append(errs, errors.New("terrain: chunk_width and noise_scale must be positive"))
	}
	if t.Octaves < 1 {
		errs = append(errs, fmt.Errorf("terrain: octaves must be at least 1, got %d", t.Octaves))
	}
	if t.Persistence <= 0 || t.Lacunarity <= 0 {
		errs = append(errs, fmt.Errorf("terrain: persistence and lacunarity must be positive, got %g and %g", t.Persistence, t.Lacunarity))
	}

	if c.Controls.Zoom < 0.1 || c.Controls.Zoom > 10 {
		errs = append(errs, fmt.Errorf("controls: zoom %.2f outside [0.1, 10]", c.Controls.Zoom))
	}

	switch c.Debug.ScreenshotFormat {
	case "png", "bmp":
	default:
		errs = append(errs, fmt.Errorf("debug: unsupported screenshot format %q", c.Debug.ScreenshotFormat))
	}

	return errors.Join(errs...)
}
