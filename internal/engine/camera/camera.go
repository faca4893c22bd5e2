// Package camera computes the fixed-eye view-projection used by the demo scenes.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults shared by every scene.
const (
	FovY = math.Pi / 4
	Near = 1.0
	Far  = 10000.0
)

// Eye positions of the two scenes.
var (
	TerrainEye = mgl32.Vec3{200, 200, 200}
	ObjEye     = mgl32.Vec3{500, 500, 500}
)

// Rig is a camera fixed at Eye looking at the origin with +Z up. The
// scene, not the camera, is rotated and scaled by the controls.
type Rig struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32
	Near   float32
	Far    float32
}

// NewRig returns a rig at eye with the default projection.
func NewRig(eye mgl32.Vec3) Rig {
	return Rig{
		Eye:  eye,
		Up:   mgl32.Vec3{0, 0, 1},
		FovY: FovY,
		Near: Near,
		Far:  Far,
	}
}

// Projection returns the perspective matrix for an aspect ratio.
func (r Rig) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(r.FovY, aspect, r.Near, r.Far)
}

// View returns look-at * Rx * Ry * Rz * S. Rotation components are
// fractions of a full turn; zoom is a uniform scale.
func (r Rig) View(rotation mgl32.Vec3, zoom float32) mgl32.Mat4 {
	const turn = 2 * math.Pi
	return mgl32.LookAtV(r.Eye, r.Target, r.Up).
		Mul4(mgl32.HomogRotate3DX(rotation.X() * turn)).
		Mul4(mgl32.HomogRotate3DY(rotation.Y() * turn)).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z() * turn)).
		Mul4(mgl32.Scale3D(zoom, zoom, zoom))
}

// ViewProjection returns Projection * View.
func (r Rig) ViewProjection(rotation mgl32.Vec3, zoom, aspect float32) mgl32.Mat4 {
	return r.Projection(aspect).Mul4(r.View(rotation, zoom))
}

// Aspect returns width/height, or 1 for a degenerate size.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
