// Package shaders provides the GLSL sources of the demo scenes, embedded
// or loaded from a directory for live editing.
package shaders

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// TerrainVertexShader is the vertex shader for terrain chunks.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades terrain from its height and normal maps.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// ObjVertexShader is the vertex shader for instanced models.
//
//go:embed obj.vert
var ObjVertexShader string

// ObjFragmentShader shades models with a diffuse texture.
//
//go:embed obj.frag
var ObjFragmentShader string

// WireFragmentShader is the translucent wireframe overlay.
//
//go:embed wire.frag
var WireFragmentShader string

// Set is one complete collection of scene shaders.
type Set struct {
	TerrainVertex   string
	TerrainFragment string
	ObjVertex       string
	ObjFragment     string
	WireFragment    string
	// Dir is where the set was loaded from; empty for the embedded set.
	Dir string
}

// Embedded returns the shaders compiled into the binary.
func Embedded() Set {
	return Set{
		TerrainVertex:   TerrainVertexShader,
		TerrainFragment: TerrainFragmentShader,
		ObjVertex:       ObjVertexShader,
		ObjFragment:     ObjFragmentShader,
		WireFragment:    WireFragmentShader,
	}
}

// IsEmbedded reports whether s is the built-in set.
func (s Set) IsEmbedded() bool { return s.Dir == "" }

// Load reads a set from dir. Files missing from dir fall back to the
// embedded source, so a directory may override just one stage.
func Load(dir string) (Set, error) {
	s := Embedded()
	s.Dir = dir
	files := []struct {
		name string
		dst  *string
	}{
		{"terrain.vert", &s.TerrainVertex},
		{"terrain.frag", &s.TerrainFragment},
		{"obj.vert", &s.ObjVertex},
		{"obj.frag", &s.ObjFragment},
		{"wire.frag", &s.WireFragment},
	}
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Set{}, fmt.Errorf("loading shader %s: %w", f.name, err)
		}
		*f.dst = string(data)
	}
	return s, nil
}

// Extensions lists the file extensions a shader directory may hold.
func Extensions() []string {
	return []string{".vert", ".frag"}
}
