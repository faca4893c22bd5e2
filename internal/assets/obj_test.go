package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOBJQuadFan(t *testing.T) {
	src := `# quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Meshes, 1)

	mesh := m.Meshes[0]
	assert.Equal(t, "quad", mesh.Name)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, [2]float32{1, 1}, mesh.Vertices[2].TexCoord)
	assert.Equal(t, [3]float32{0, 0, 1}, mesh.Vertices[3].Normal)
	assert.Equal(t, -1, mesh.Material)
}

func TestParseOBJNegativeIndicesAndDedup(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf -4 -3 -2\nf -2 -3 -1\n"
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	mesh := m.Meshes[0]
	assert.Equal(t, "default", mesh.Name)
	assert.Len(t, mesh.Vertices, 4, "shared corners are deduplicated")
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, mesh.Indices)
}

func TestParseOBJComputesMissingNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	for _, v := range m.Meshes[0].Vertices {
		assert.InDeltaSlice(t, []float32{0, 0, 1}, v.Normal[:], 1e-6)
	}
}

func TestParseOBJMaterialsSplitMeshes(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
usemtl red
f 1 2 3
usemtl blue
f 3 2 1
usemtl red
f 1 3 2
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Materials, 2)
	require.Len(t, m.Meshes, 3)
	assert.Equal(t, 0, m.Meshes[0].Material)
	assert.Equal(t, 1, m.Meshes[1].Material)
	assert.Equal(t, 0, m.Meshes[2].Material)
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"short vertex", "v 1 2\n"},
		{"bad number", "v 1 x 2\n"},
		{"out of range", "v 0 0 0\nf 1 2 3\n"},
		{"two-vertex face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"no position", "v 0 0 0\nf /1 /1 /1\n"},
		{"usemtl without name", "usemtl\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestParseOBJObjectsAndMaterialLib(t *testing.T) {
	src := `mtllib scene.mtl
v 0 0 0
v 1 0 0
v 0 1 0
o left
f 1 2 3
o right
usemtl red
f 3 2 1`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"scene.mtl"}, m.MaterialLibs)
	require.Len(t, m.Meshes, 2)
	assert.Equal(t, "left", m.Meshes[0].Name)
	assert.Equal(t, -1, m.Meshes[0].Material)
	assert.Equal(t, "right", m.Meshes[1].Name)
	assert.Equal(t, 0, m.Meshes[1].Material)
	assert.Equal(t, []uint32{0, 1, 2}, m.Meshes[1].Indices, "the last line needs no newline")
}

func TestParseMTL(t *testing.T) {
	m := &ModelData{Materials: []MaterialData{{Name: "a"}, {Name: "b"}}}
	src := "newmtl a\nKd 1 0 0\nmap_Kd tex/a.tga\nnewmtl unused\nKd 0 1 0"
	require.NoError(t, ParseMTL(strings.NewReader(src), m))

	assert.Equal(t, [3]float32{1, 0, 0}, m.Materials[0].Diffuse)
	assert.Equal(t, "tex/a.tga", m.Materials[0].DiffuseMap)
	assert.Equal(t, "", m.Materials[1].DiffuseMap)
}
