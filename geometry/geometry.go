// Package geometry builds the static meshes drawn by the scenes. Every
// function returns fresh slices and has no side effects.
package geometry

const (
	// FaceCount is the number of faces of the cube.
	FaceCount = 6
	// VerticesPerFace is the number of distinct vertices of one cube face.
	VerticesPerFace = 4
	// CubeVertexCount is the number of vertices of the cube mesh.
	CubeVertexCount = FaceCount * VerticesPerFace
	// CubeIndexCount is the number of indices of the cube mesh.
	CubeIndexCount = FaceCount * 6

	PositionSize = 3
	ColorSize    = 4
	TexCoordSize = 2
)

// Mesh is an indexed triangle list with per-vertex attributes.
type Mesh struct {
	Positions []float32
	Colors    []float32
	TexCoords []float32
	Indices   []uint16
}

// Faces are wound counter-clockwise seen from outside the cube.
var (
	frontFace  = []float32{-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1}
	backFace   = []float32{-1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1, -1}
	topFace    = []float32{-1, 1, -1, -1, 1, 1, 1, 1, 1, 1, 1, -1}
	bottomFace = []float32{-1, -1, -1, 1, -1, -1, 1, -1, 1, -1, -1, 1}
	rightFace  = []float32{1, -1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1}
	leftFace   = []float32{-1, -1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1}
)

// FaceColors holds the RGBA color of each face in mesh order: front (white),
// back (red), top (green), bottom (blue), right (yellow), left (purple).
var FaceColors = [FaceCount][4]float32{
	{0.8, 0.8, 0.8, 1.0},
	{0.8, 0.0, 0.0, 1.0},
	{0.0, 0.8, 0.0, 1.0},
	{0.0, 0.0, 0.8, 1.0},
	{0.8, 0.8, 0.0, 1.0},
	{0.8, 0.0, 0.8, 1.0},
}

// faceTexCoords maps the whole texture onto one face.
//
// Every face reuses the same mapping, so only the front face shows the image
// upright; the others see it rotated or mirrored.
var faceTexCoords = []float32{0, 0, 1, 0, 1, 1, 0, 1}

// Cube returns the 2x2x2 cube centered at the origin.
func Cube() Mesh {
	m := Mesh{
		Positions: make([]float32, 0, CubeVertexCount*PositionSize),
		Colors:    make([]float32, 0, CubeVertexCount*ColorSize),
		TexCoords: make([]float32, 0, CubeVertexCount*TexCoordSize),
		Indices:   make([]uint16, 0, CubeIndexCount),
	}

	for face, positions := range [][]float32{frontFace, backFace, topFace, bottomFace, rightFace, leftFace} {
		m.Positions = append(m.Positions, positions...)
		m.Indices = append(m.Indices, faceTriangles(uint16(face*VerticesPerFace))...)
		for v := 0; v < VerticesPerFace; v++ {
			m.Colors = append(m.Colors, FaceColors[face][:]...)
		}
		m.TexCoords = append(m.TexCoords, faceTexCoords...)
	}
	return m
}

// faceTriangles splits the quad starting at vertex b into two triangles.
func faceTriangles(b uint16) []uint16 {
	return []uint16{b, b + 1, b + 2, b, b + 2, b + 3}
}

// Quad returns two triangles covering clip space, as 2D positions.
func Quad() []float32 {
	return []float32{
		-1, -1, // left-bottom
		1, -1, // right-bottom
		-1, 1, // left-top

		-1, 1, // left-top
		1, -1, // right-bottom
		1, 1, // right-top
	}
}

// Rect returns two triangles covering the pixel rectangle at (x, y) with the
// given size, in the vertex order matching BoardTexCoords.
func Rect(x, y, w, h float32) []float32 {
	x0, x1 := x, x+w
	y0, y1 := y, y+h
	return []float32{x0, y0, x1, y0, x0, y1, x0, y1, x1, y0, x1, y1}
}

// BoardTexCoords returns the texture coordinates for a Rect.
func BoardTexCoords() []float32 {
	return []float32{0, 0, 1, 0, 0, 1, 0, 1, 1, 0, 1, 1}
}
