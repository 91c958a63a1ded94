package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fieldOfView    = 45.0
	zNear          = 0.1
	zFar           = 100.0
	cameraDistance = -6.0
)

// Per-axis rotation speeds, relative to the rotation parameter.
const (
	rotationZ = 1.0
	rotationY = 0.7
	rotationX = 0.3
)

// Transform holds the matrices of one frame.
type Transform struct {
	Projection mgl32.Mat4
	ModelView  mgl32.Mat4
}

// ComputeMatrices returns a 45° perspective projection and a model-view
// matrix that moves the model 6 units away and turns it about Z, then Y,
// then X. The order of the rotations is significant.
func ComputeMatrices(aspect, rotation float32) Transform {
	projection := mgl32.Perspective(mgl32.DegToRad(fieldOfView), aspect, zNear, zFar)

	modelView := mgl32.Ident4().
		Mul4(mgl32.Translate3D(0, 0, cameraDistance)).
		Mul4(mgl32.HomogRotate3DZ(rotation * rotationZ)).
		Mul4(mgl32.HomogRotate3DY(rotation * rotationY)).
		Mul4(mgl32.HomogRotate3DX(rotation * rotationX))

	return Transform{Projection: projection, ModelView: modelView}
}

// AspectRatio returns width/height, or 1 while the surface has no height.
func AspectRatio(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
