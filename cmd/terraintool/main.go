// terraintool inspects and exports the procedural terrain offline.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Faultbox/terrain-playground/internal/assets"
	"github.com/Faultbox/terrain-playground/internal/config"
	"github.com/Faultbox/terrain-playground/internal/engine/debug"
	"github.com/Faultbox/terrain-playground/internal/engine/noise"
	"github.com/Faultbox/terrain-playground/internal/engine/terrain"
	"github.com/Faultbox/terrain-playground/internal/engine/texture"
	"github.com/Faultbox/terrain-playground/internal/playground"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "dump":
		err = cmdDump(args)
	case "info":
		err = cmdInfo(args)
	case "obj":
		err = cmdObj(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - terrain playground chunk utility

Usage:
  terraintool <command> [options]

Commands:
  dump [-x0 -y0 -x1 -y1] [-seed N] [-res N] [-out DIR] [-format png|bmp] [-scale N]
                          Write height and normal maps for a range of chunks
  info [-seed N] [-x N -y N] [-res N]
                          Print corner heights and height range of one chunk
  obj <file.obj>          Print OBJ model statistics

Examples:
  terraintool dump -x0 -2 -y0 -2 -x1 2 -y1 2 -seed 7 -out ./chunks -scale 8
  terraintool info -seed 7 -x 1 -y 0
  terraintool obj model.obj`)
}

// chunkFlags registers the terrain parameters shared by dump and info,
// defaulting to the playground's config defaults.
type chunkFlags struct {
	seed *int64
	res  *int
}

func addChunkFlags(fs *flag.FlagSet) chunkFlags {
	d := config.Default().Terrain
	return chunkFlags{
		seed: fs.Int64("seed", d.Seed, "Noise seed"),
		res:  fs.Int("res", d.Resolution, "Height texels per chunk side, minus one"),
	}
}

func (f chunkFlags) source() (noise.Source, terrain.ChunkParams, error) {
	if *f.res < 1 {
		return nil, terrain.ChunkParams{}, fmt.Errorf("resolution must be at least 1, got %d", *f.res)
	}
	opts := playground.TerrainOptions(config.Default().Terrain)
	opts.Chunk.Resolution = *f.res
	return noise.NewPerlinWithParams(*f.seed, opts.Noise), opts.Chunk, nil
}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	x0 := fs.Int("x0", 0, "First chunk column")
	y0 := fs.Int("y0", 0, "First chunk row")
	x1 := fs.Int("x1", 0, "Last chunk column (inclusive)")
	y1 := fs.Int("y1", 0, "Last chunk row (inclusive)")
	out := fs.String("out", "chunks", "Output directory")
	format := fs.String("format", debug.FormatPNG, "Image format: png or bmp")
	scale := fs.Int("scale", 1, "Upscale factor")
	nearest := fs.Bool("nearest", false, "Upscale without interpolation")
	cf := addChunkFlags(fs)
	fs.Parse(args)

	if *x1 < *x0 || *y1 < *y0 {
		return fmt.Errorf("empty range %d,%d .. %d,%d", *x0, *y0, *x1, *y1)
	}
	if *scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", *scale)
	}
	*format = strings.ToLower(*format)
	if *format != debug.FormatPNG && *format != debug.FormatBMP {
		return fmt.Errorf("unknown format %q", *format)
	}
	src, params, err := cf.source()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	total := (*x1 - *x0 + 1) * (*y1 - *y0 + 1)
	bar := progressbar.Default(int64(total), "dumping chunks")
	for y := *y0; y <= *y1; y++ {
		for x := *x0; x <= *x1; x++ {
			c := terrain.BuildChunk(x, y, src, params)
			height, normal := heightImage(c.Height), normalImage(c.Normal)
			if *scale > 1 {
				w, h := height.Bounds().Dx()**scale, height.Bounds().Dy()**scale
				if *nearest {
					height, normal = texture.ScaleNearest(height, w, h), texture.ScaleNearest(normal, w, h)
				} else {
					height, normal = texture.Scale(height, w, h), texture.Scale(normal, w, h)
				}
			}
			base := filepath.Join(*out, fmt.Sprintf("chunk_%d_%d", x, y))
			if err := writeImage(base+"_height."+*format, height, *format); err != nil {
				return err
			}
			if err := writeImage(base+"_normal."+*format, normal, *format); err != nil {
				return err
			}
			bar.Add(1)
		}
	}
	fmt.Printf("\nWrote %d chunks to %s\n", total, *out)
	return nil
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	x := fs.Int("x", 0, "Chunk column")
	y := fs.Int("y", 0, "Chunk row")
	cf := addChunkFlags(fs)
	fs.Parse(args)

	src, params, err := cf.source()
	if err != nil {
		return err
	}
	c := terrain.BuildChunk(*x, *y, src, params)
	lo, hi := heightRange(c.Height)

	fmt.Printf("Chunk:     %d, %d (seed %d)\n", c.X, c.Y, *cf.seed)
	fmt.Printf("Position:  %.1f, %.1f\n", c.Position.X(), c.Position.Y())
	fmt.Printf("Texels:    %dx%d\n", c.Height.Width, c.Height.Height)
	fmt.Printf("Corners:   %.4f %.4f %.4f %.4f\n", c.Corners[0], c.Corners[1], c.Corners[2], c.Corners[3])
	fmt.Printf("Height:    %.4f .. %.4f\n", lo, hi)
	fmt.Printf("Bounds z:  %.2f .. %.2f\n", c.Bounds.Min[2], c.Bounds.Max[2])
	return nil
}

func cmdObj(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: terraintool obj <file.obj>")
	}
	m, err := assets.LoadModelFile(args[0])
	if err != nil {
		return err
	}
	verts, tris := m.Data.Counts()
	fmt.Printf("Model:     %s\n", m.Name)
	fmt.Printf("Meshes:    %d\n", len(m.Data.Meshes))
	fmt.Printf("Vertices:  %d\n", verts)
	fmt.Printf("Triangles: %d\n", tris)
	fmt.Printf("Materials: %d\n", len(m.Data.Materials))
	for i, mat := range m.Data.Materials {
		tex := "none"
		if mat.DiffuseMap != "" {
			tex = mat.DiffuseMap
			if m.Textures[i] == nil {
				tex += " (unreadable)"
			}
		}
		fmt.Printf("  %-12s diffuse %.2f %.2f %.2f, map %s\n", mat.Name, mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], tex)
	}
	return nil
}

func heightRange(h *terrain.HeightMap) (lo, hi float32) {
	lo, hi = math.MaxFloat32, -math.MaxFloat32
	for _, v := range h.Pix {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
