package assets

import (
	"fmt"
	"io"
	"math"
	"strings"

	gobj "github.com/g3n/engine/loader/obj"
)

// Vertex is one deduplicated OBJ corner: position, texture coordinate and
// normal, laid out like the renderer's vertex buffer element.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// MeshData is one object or group of an OBJ file.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	// Material indexes ModelData.Materials, or -1.
	Material int
}

// MaterialData is the subset of an MTL material the viewer uses.
type MaterialData struct {
	Name       string
	Diffuse    [3]float32
	DiffuseMap string
}

// ModelData is a parsed OBJ file.
type ModelData struct {
	Meshes    []MeshData
	Materials []MaterialData
	// MaterialLibs lists the mtllib references in file order.
	MaterialLibs []string
}

// Counts returns total vertices and triangles over all meshes.
func (m *ModelData) Counts() (vertices, triangles int) {
	for _, mesh := range m.Meshes {
		vertices += len(mesh.Vertices)
		triangles += len(mesh.Indices) / 3
	}
	return vertices, triangles
}

type objIndex struct{ v, vt, vn int }

// objLeader gives faces and usemtl statements that precede the first "o"
// an object to belong to.
const objLeader = "o default\n"

// decode runs the g3n decoder. Both inputs get a trailing newline since
// the decoder drops an unterminated last line.
func decode(obj, mtl io.Reader) (*gobj.Decoder, error) {
	nl := func(r io.Reader) io.Reader { return io.MultiReader(r, strings.NewReader("\n")) }
	return gobj.DecodeReader(nl(obj), nl(mtl))
}

// ParseOBJ reads Wavefront OBJ geometry. Polygons are fan-triangulated,
// negative indices are resolved, and missing normals are smoothed from
// face normals. Each run of faces sharing a material becomes one mesh.
// Materials are named only; call ParseMTL to fill them.
func ParseOBJ(r io.Reader) (*ModelData, error) {
	dec, err := decode(io.MultiReader(strings.NewReader(objLeader), r), strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	b := &objBuilder{
		dec:       dec,
		model:     &ModelData{},
		materials: make(map[string]int),
	}
	if dec.Matlib != "" {
		b.model.MaterialLibs = []string{dec.Matlib}
	}
	for _, o := range dec.Objects {
		if err := b.object(o); err != nil {
			return nil, fmt.Errorf("obj object %q: %w", o.Name, err)
		}
	}
	if len(b.model.Meshes) == 0 {
		return nil, fmt.Errorf("obj has no faces")
	}
	return b.model, nil
}

// objBuilder converts decoded objects into deduplicated meshes.
type objBuilder struct {
	dec       *gobj.Decoder
	model     *ModelData
	materials map[string]int

	cur         *MeshData
	lookup      map[objIndex]uint32
	needNormals bool
}

func (b *objBuilder) object(o gobj.Object) error {
	name := o.Name
	if name == "" {
		name = "default"
	}
	for _, f := range o.Faces {
		if len(f.Vertices) < 3 {
			return fmt.Errorf("face with %d vertices", len(f.Vertices))
		}
		mat := b.materialIndex(f.Material)
		if b.cur == nil || b.cur.Material != mat {
			b.flush()
			b.cur = &MeshData{Name: name, Material: mat}
			b.lookup = make(map[objIndex]uint32)
		}
		corners := make([]uint32, len(f.Vertices))
		for i := range f.Vertices {
			idx, err := b.resolve(f, i)
			if err != nil {
				return err
			}
			corners[i] = b.vertex(idx)
		}
		for i := 1; i+1 < len(corners); i++ {
			b.cur.Indices = append(b.cur.Indices, corners[0], corners[i], corners[i+1])
		}
	}
	b.flush()
	return nil
}

func (b *objBuilder) flush() {
	if b.cur == nil {
		return
	}
	if len(b.cur.Indices) > 0 {
		if b.needNormals {
			smoothNormals(b.cur)
		}
		b.model.Meshes = append(b.model.Meshes, *b.cur)
	}
	b.cur, b.needNormals = nil, false
}

// materialIndex maps a usemtl name to its slot in the model, in order of
// first use. Faces without a declared material get -1.
func (b *objBuilder) materialIndex(name string) int {
	if _, ok := b.dec.Materials[name]; !ok || name == "" {
		return -1
	}
	if i, ok := b.materials[name]; ok {
		return i
	}
	b.model.Materials = append(b.model.Materials, MaterialData{Name: name, Diffuse: [3]float32{1, 1, 1}})
	b.materials[name] = len(b.model.Materials) - 1
	return b.materials[name]
}

// resolve checks corner i of f against the decoded arrays. Absent texture
// coordinates and normals come back as -1.
func (b *objBuilder) resolve(f gobj.Face, i int) (objIndex, error) {
	idx := objIndex{v: f.Vertices[i], vt: -1, vn: -1}
	if idx.v < 0 || idx.v >= len(b.dec.Vertices)/3 {
		return idx, fmt.Errorf("face vertex %d out of range", f.Vertices[i]+1)
	}
	if i < len(f.Uvs) && f.Uvs[i] >= 0 && f.Uvs[i] < len(b.dec.Uvs)/2 {
		idx.vt = f.Uvs[i]
	}
	if i < len(f.Normals) && f.Normals[i] >= 0 && f.Normals[i] < len(b.dec.Normals)/3 {
		idx.vn = f.Normals[i]
	}
	return idx, nil
}

func (b *objBuilder) vertex(idx objIndex) uint32 {
	if i, ok := b.lookup[idx]; ok {
		return i
	}
	d := b.dec
	v := Vertex{Position: [3]float32{d.Vertices[idx.v*3], d.Vertices[idx.v*3+1], d.Vertices[idx.v*3+2]}}
	if idx.vt >= 0 {
		v.TexCoord = [2]float32{d.Uvs[idx.vt*2], d.Uvs[idx.vt*2+1]}
	}
	if idx.vn >= 0 {
		v.Normal = [3]float32{d.Normals[idx.vn*3], d.Normals[idx.vn*3+1], d.Normals[idx.vn*3+2]}
	} else {
		b.needNormals = true
	}
	i := uint32(len(b.cur.Vertices))
	b.cur.Vertices = append(b.cur.Vertices, v)
	b.lookup[idx] = i
	return i
}

// smoothNormals replaces zero normals with the area-weighted average of
// adjacent face normals.
func smoothNormals(m *MeshData) {
	acc := make([][3]float32, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := faceNormal(m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position)
		for _, k := range []uint32{a, b, c} {
			acc[k][0] += n[0]
			acc[k][1] += n[1]
			acc[k][2] += n[2]
		}
	}
	for i := range m.Vertices {
		if m.Vertices[i].Normal != ([3]float32{}) {
			continue
		}
		m.Vertices[i].Normal = unit(acc[i])
	}
}

func faceNormal(a, b, c [3]float32) [3]float32 {
	u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	v := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	return [3]float32{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

func unit(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// ParseMTL fills the materials of m that are defined in an MTL file.
// Materials the file does not mention are left untouched.
func ParseMTL(r io.Reader, m *ModelData) error {
	dec, err := decode(strings.NewReader(""), r)
	if err != nil {
		return fmt.Errorf("mtl: %w", err)
	}
	for i := range m.Materials {
		mat, ok := dec.Materials[m.Materials[i].Name]
		if !ok {
			continue
		}
		m.Materials[i].Diffuse = [3]float32{mat.Diffuse.R, mat.Diffuse.G, mat.Diffuse.B}
		m.Materials[i].DiffuseMap = mat.MapKd
	}
	return nil
}
