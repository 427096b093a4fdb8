package ecg3d

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNoGeometry        = errors.New("object has no geometry")
	ErrMissingAttribute  = errors.New("geometry is missing a required attribute")
	ErrAttributeMismatch = errors.New("position and normal counts differ")
	ErrStaleObject       = errors.New("source object is no longer valid")
)

// DefaultNormalColor is the line colour used by NewVertexNormalsHelperWithDefaults.
var DefaultNormalColor = ColorHex(0xff0000)

// VertexNormalsHelper visualises the vertex normals of another object as
// line segments, one per vertex, from the vertex's world position to that
// position plus its world-space normal scaled to Size.
//
// Index buffers on the source geometry are ignored: every vertex in the
// position/normal arrays gets a segment.
type VertexNormalsHelper struct {
	object   *Object3D
	size     float64
	node     *Object3D
	geometry *BufferGeometry
	material *LineBasicMaterial
	lines    *BufferAttribute
	count    int

	// scratch, reused by every Update
	v1, v2       Vector3
	normalMatrix mgl64.Mat3
}

// NewVertexNormalsHelper builds a helper for object. object must draw a
// geometry with position and normal attributes of equal length.
func NewVertexNormalsHelper(object *Object3D, size float64, col color.Color) (*VertexNormalsHelper, error) {
	if object == nil {
		return nil, fmt.Errorf("vertex normals helper: %w", ErrNoGeometry)
	}
	if object.Disposed() {
		return nil, fmt.Errorf("vertex normals helper: %w", ErrStaleObject)
	}
	geom := GeometryOf(object)
	if geom == nil {
		return nil, fmt.Errorf("vertex normals helper: %w", ErrNoGeometry)
	}
	_, normals, err := vertexAttributes(geom)
	if err != nil {
		return nil, fmt.Errorf("vertex normals helper: %w", err)
	}

	n := normals.Count()
	h := &VertexNormalsHelper{
		object:   object,
		size:     size,
		lines:    NewFloat32BufferAttribute(n*2, 3),
		count:    n,
		geometry: NewBufferGeometry(),
		material: NewLineBasicMaterial(col),
	}
	h.geometry.SetAttribute(AttrPosition, h.lines)

	// positions are written in world space, so the helper's own transform
	// stays identity
	h.node = NewObject3D()
	h.node.Name = "VertexNormalsHelper"
	h.node.MatrixAutoUpdate = false
	h.node.Renderable = h

	log.Printf("Vertex normals helper: %d segments", n)

	if err := h.Update(); err != nil {
		return nil, err
	}
	return h, nil
}

// NewVertexNormalsHelperWithDefaults uses size 1 and red lines.
func NewVertexNormalsHelperWithDefaults(object *Object3D) (*VertexNormalsHelper, error) {
	return NewVertexNormalsHelper(object, 1, DefaultNormalColor)
}

// Update recomputes every segment from the source object's current world
// transform and geometry, then marks the line buffer for re-upload.
func (h *VertexNormalsHelper) Update() error {
	obj := h.object
	if obj.Disposed() {
		return fmt.Errorf("vertex normals helper update: %w", ErrStaleObject)
	}
	geom := GeometryOf(obj)
	if geom == nil {
		return fmt.Errorf("vertex normals helper update: geometry removed: %w", ErrStaleObject)
	}
	positions, normals, err := vertexAttributes(geom)
	if err != nil {
		return fmt.Errorf("vertex normals helper update: %w: %w", ErrStaleObject, err)
	}
	if positions.Count() != h.count || normals.Count() != h.count {
		return fmt.Errorf("vertex normals helper update: vertex count changed from %d: %w", h.count, ErrStaleObject)
	}

	obj.UpdateWorldMatrix(true, false)
	matrixWorld := obj.MatrixWorld
	h.normalMatrix = NormalMatrix(matrixWorld)

	idx := 0
	for j := 0; j < h.count; j++ {
		h.v1.Set(positions.GetXYZ(j)).ApplyMatrix4(matrixWorld)
		h.v2.Set(normals.GetXYZ(j)).ApplyMatrix3(h.normalMatrix).Normalize().MultiplyScalar(h.size).Add(&h.v1)

		h.lines.SetXYZ(idx, h.v1.X, h.v1.Y, h.v1.Z)
		idx++
		h.lines.SetXYZ(idx, h.v2.X, h.v2.Y, h.v2.Z)
		idx++
	}

	h.lines.MarkNeedsUpdate()
	return nil
}

// vertexAttributes returns the position and normal attributes of geom once
// both hold the same number of xyz items.
func vertexAttributes(geom *BufferGeometry) (positions, normals *BufferAttribute, err error) {
	normals, ok := geom.Attribute(AttrNormal)
	if !ok || normals == nil {
		return nil, nil, fmt.Errorf("%q: %w", AttrNormal, ErrMissingAttribute)
	}
	positions, ok = geom.Attribute(AttrPosition)
	if !ok || positions == nil {
		return nil, nil, fmt.Errorf("%q: %w", AttrPosition, ErrMissingAttribute)
	}
	if positions.ItemSize < 3 || normals.ItemSize < 3 {
		return nil, nil, fmt.Errorf("item sizes %d and %d, need 3: %w",
			positions.ItemSize, normals.ItemSize, ErrAttributeMismatch)
	}
	if positions.Count() != normals.Count() {
		return nil, nil, fmt.Errorf("%d positions, %d normals: %w",
			positions.Count(), normals.Count(), ErrAttributeMismatch)
	}
	return positions, normals, nil
}

func (h *VertexNormalsHelper) Object() *Object3D { return h.object }
func (h *VertexNormalsHelper) Size() float64     { return h.size }
func (h *VertexNormalsHelper) Color() color.RGBA { return h.material.Color }

// Node is the scene node to add to a scene to draw the helper.
func (h *VertexNormalsHelper) Node() *Object3D { return h.node }

func (h *VertexNormalsHelper) Geometry() *BufferGeometry { return h.geometry }
func (h *VertexNormalsHelper) Material() Material        { return h.material }
func (h *VertexNormalsHelper) Mode() DrawMode            { return DrawLines }

// Lines is the 2N-point world-space segment buffer.
func (h *VertexNormalsHelper) Lines() *BufferAttribute { return h.lines }

// Segments is the number of segments, one per source vertex.
func (h *VertexNormalsHelper) Segments() int { return h.count }

// Segment returns the start and end of segment k.
func (h *VertexNormalsHelper) Segment(k int) (start, end mgl64.Vec3) {
	return vertexAt(h.lines, 2*k), vertexAt(h.lines, 2*k+1)
}
