package renderer

import (
	"encoding/binary"

	"github.com/richinsley/glscene/graphics"
	"golang.org/x/mobile/exp/f32"
)

// GeometryBuffer is a buffer object together with the layout of its data.
// The layout is fixed when the buffer is created.
type GeometryBuffer struct {
	Handle graphics.Buffer
	Target graphics.Enum
	// Components is the number of values per vertex; 1 for index buffers.
	Components int
	// Type is FLOAT for vertex data and UNSIGNED_SHORT for indices.
	Type graphics.Enum
	// Count is the number of vertices, or of indices for an index buffer.
	Count int
}

// CreateBuffer uploads data to a new buffer bound to target with static
// usage. components is the number of floats per vertex.
func CreateBuffer(f graphics.Functions, target graphics.Enum, data []float32, components int) *GeometryBuffer {
	b := f.CreateBuffer()
	f.BindBuffer(target, b)
	f.BufferData(target, f32.Bytes(binary.LittleEndian, data...), graphics.STATIC_DRAW)

	count := 0
	if components > 0 {
		count = len(data) / components
	}
	return &GeometryBuffer{
		Handle:     b,
		Target:     target,
		Components: components,
		Type:       graphics.FLOAT,
		Count:      count,
	}
}

// CreateIndexBuffer uploads 16 bit indices to a new element array buffer.
func CreateIndexBuffer(f graphics.Functions, indices []uint16) *GeometryBuffer {
	b := f.CreateBuffer()
	f.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, b)
	f.BufferData(graphics.ELEMENT_ARRAY_BUFFER, uint16Bytes(indices), graphics.STATIC_DRAW)
	return &GeometryBuffer{
		Handle:     b,
		Target:     graphics.ELEMENT_ARRAY_BUFFER,
		Components: 1,
		Type:       graphics.UNSIGNED_SHORT,
		Count:      len(indices),
	}
}

// UpdateBuffer replaces the contents of a float buffer, keeping its object
// and layout.
func UpdateBuffer(f graphics.Functions, buf *GeometryBuffer, data []float32) {
	f.BindBuffer(buf.Target, buf.Handle)
	f.BufferData(buf.Target, f32.Bytes(binary.LittleEndian, data...), graphics.STATIC_DRAW)
	if buf.Components > 0 {
		buf.Count = len(data) / buf.Components
	}
}

// BindAttribute binds buf as the array buffer and feeds it to slot as
// tightly packed floats, componentCount per vertex. componentCount must
// match the layout of the data; this is not checked. A slot of -1 (an
// attribute the program does not use) is skipped after the bind.
func BindAttribute(f graphics.Functions, componentCount int, slot graphics.Attrib, buf *GeometryBuffer) {
	f.BindBuffer(graphics.ARRAY_BUFFER, buf.Handle)
	if !slot.Valid() {
		return
	}
	f.VertexAttribPointer(slot, componentCount, graphics.FLOAT, false, 0, 0)
	f.EnableVertexAttribArray(slot)
}

func uint16Bytes(values []uint16) []byte {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return b
}
