package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/smasonuk/ecg3d"
)

// VertexArray wraps a VAO. Core profile needs one bound before any attribute
// pointer is set.
type VertexArray struct {
	id uint32
}

func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.id)
}

func (va *VertexArray) Delete() {
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}

// ArrayBuffer is a GPU copy of a float32 vertex attribute.
type ArrayBuffer struct {
	id       uint32
	itemSize int32
	count    int32
	// version of the BufferAttribute last uploaded by Sync, -1 before the
	// first upload
	version int
}

func NewArrayBuffer(itemSize int) *ArrayBuffer {
	b := &ArrayBuffer{itemSize: int32(itemSize), version: -1}
	gl.GenBuffers(1, &b.id)
	return b
}

// Upload replaces the buffer contents.
func (b *ArrayBuffer) Upload(data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	}
	b.count = itemCount(len(data), b.itemSize)
}

// Sync uploads attr if its version moved since the last Sync. It reports
// whether an upload happened.
func (b *ArrayBuffer) Sync(attr *ecg3d.BufferAttribute) bool {
	if !needsUpload(b.version, attr) {
		return false
	}
	b.itemSize = int32(attr.ItemSize)
	b.Upload(attr.Array)
	b.version = attr.Version()
	return true
}

// EnableAttrib points the attribute at loc to this buffer. A vertex array
// must be bound.
func (b *ArrayBuffer) EnableAttrib(loc uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.VertexAttribPointerWithOffset(loc, b.itemSize, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
}

// Count is the number of items in the last upload.
func (b *ArrayBuffer) Count() int {
	return int(b.count)
}

func (b *ArrayBuffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

func needsUpload(uploaded int, attr *ecg3d.BufferAttribute) bool {
	return attr != nil && attr.ItemSize > 0 && attr.Version() != uploaded
}

// itemCount is the number of whole items in n floats; zero when itemSize is
// not positive.
func itemCount(n int, itemSize int32) int32 {
	if itemSize <= 0 {
		return 0
	}
	return int32(n) / itemSize
}
