package ecg3d

// DrawMode is the primitive a renderable's vertices are assembled into.
type DrawMode int

const (
	DrawTriangles DrawMode = iota
	// DrawLines pairs vertices 2k and 2k+1 into independent segments.
	DrawLines
	DrawLineStrip
	DrawLineLoop
	DrawPoints
)

// Renderable is anything a renderer can draw: a geometry, a material and a
// primitive mode. Scene nodes hold one in Object3D.Renderable.
type Renderable interface {
	Geometry() *BufferGeometry
	Material() Material
	Mode() DrawMode
}

// Mesh draws its geometry as triangles.
type Mesh struct {
	geometry *BufferGeometry
	material Material
}

func (m *Mesh) Geometry() *BufferGeometry { return m.geometry }
func (m *Mesh) Material() Material        { return m.material }
func (m *Mesh) Mode() DrawMode            { return DrawTriangles }

// NewMesh returns a scene node drawing geometry with material.
func NewMesh(geometry *BufferGeometry, material Material) *Object3D {
	o := NewObject3D()
	o.Renderable = &Mesh{geometry: geometry, material: material}
	return o
}

// LineSegments draws its geometry as independent segments.
type LineSegments struct {
	geometry *BufferGeometry
	material Material
}

func (l *LineSegments) Geometry() *BufferGeometry { return l.geometry }
func (l *LineSegments) Material() Material        { return l.material }
func (l *LineSegments) Mode() DrawMode            { return DrawLines }

func NewLineSegments(geometry *BufferGeometry, material Material) *Object3D {
	o := NewObject3D()
	o.Renderable = &LineSegments{geometry: geometry, material: material}
	return o
}

// GeometryOf returns the geometry drawn by o, or nil.
func GeometryOf(o *Object3D) *BufferGeometry {
	if o == nil || o.Renderable == nil {
		return nil
	}
	return o.Renderable.Geometry()
}
