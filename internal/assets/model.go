package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Faultbox/terrain-playground/internal/engine/texture"
)

// Model is a parsed OBJ with one decoded diffuse image per material.
// Textures[i] is nil when material i has no usable diffuse map.
type Model struct {
	Name     string
	Data     *ModelData
	Textures []*image.RGBA
}

// LoadModel parses an OBJ file from fsys together with the MTL libraries
// and diffuse maps it references. Missing or broken MTL files and images
// degrade to untextured materials; a missing or invalid OBJ is an error.
func LoadModel(fsys fs.FS, name string) (*Model, error) {
	raw, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("model %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	data, err := ParseOBJ(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}

	dir := path.Dir(name)
	for _, lib := range data.MaterialLibs {
		mtl, err := fs.ReadFile(fsys, path.Join(dir, lib))
		if err != nil {
			continue
		}
		if err := ParseMTL(bytes.NewReader(mtl), data); err != nil {
			return nil, fmt.Errorf("model %s: %s: %w", name, lib, err)
		}
	}

	m := &Model{Name: name, Data: data, Textures: make([]*image.RGBA, len(data.Materials))}
	for i, mat := range data.Materials {
		if mat.DiffuseMap == "" {
			continue
		}
		file := path.Join(dir, filepath.ToSlash(mat.DiffuseMap))
		img, err := fs.ReadFile(fsys, file)
		if err != nil {
			continue
		}
		if rgba, err := texture.Decode(file, img); err == nil {
			m.Textures[i] = rgba
		}
	}
	return m, nil
}

// LoadModelFile loads an OBJ from a path on disk, resolving references
// relative to its directory.
func LoadModelFile(file string) (*Model, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	return LoadModel(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
