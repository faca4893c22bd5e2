package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/terrain-playground/internal/engine/debug"
	"github.com/Faultbox/terrain-playground/internal/engine/terrain"
)

// heightImage maps stored heights (noise +0.5) to grey, clamped to [0,1].
// Row 0 of the map is the chunk's minimum y, which becomes the bottom row.
func heightImage(h *terrain.HeightMap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, h.Width, h.Height))
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			g := unorm8(h.At(x, y))
			img.SetRGBA(x, h.Height-1-y, color.RGBA{g, g, g, 255})
		}
	}
	return img
}

// normalImage writes the encoded normals as RGB.
func normalImage(n *terrain.NormalMap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n.Width, n.Height))
	for y := 0; y < n.Height; y++ {
		for x := 0; x < n.Width; x++ {
			e := n.Encoded(x, y)
			img.SetRGBA(x, n.Height-1-y, color.RGBA{unorm8(e[0]), unorm8(e[1]), unorm8(e[2]), 255})
		}
	}
	return img
}

func unorm8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func writeImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if format == debug.FormatBMP {
		err = bmp.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
