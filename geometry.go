package ecg3d

import "github.com/go-gl/mathgl/mgl64"

// Well-known attribute names.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
	AttrColor    = "color"
)

// BufferGeometry is a set of named, index-aligned vertex attributes with an
// optional triangle index.
type BufferGeometry struct {
	attributes map[string]*BufferAttribute
	index      []uint32
}

func NewBufferGeometry() *BufferGeometry {
	return &BufferGeometry{attributes: make(map[string]*BufferAttribute)}
}

func (g *BufferGeometry) SetAttribute(name string, attr *BufferAttribute) {
	g.attributes[name] = attr
}

func (g *BufferGeometry) Attribute(name string) (*BufferAttribute, bool) {
	attr, ok := g.attributes[name]
	return attr, ok
}

func (g *BufferGeometry) DeleteAttribute(name string) {
	delete(g.attributes, name)
}

func (g *BufferGeometry) SetIndex(index []uint32) {
	g.index = index
}

// Index returns the triangle index, or nil for non-indexed geometry.
func (g *BufferGeometry) Index() []uint32 {
	return g.index
}

// VertexCount is the number of items in the position attribute.
func (g *BufferGeometry) VertexCount() int {
	pos, ok := g.attributes[AttrPosition]
	if !ok {
		return 0
	}
	return pos.Count()
}

// ComputeVertexNormals sets the normal attribute to the area-weighted
// average of the faces sharing each vertex. Non-indexed geometry is treated
// as consecutive triangles, which gives flat normals.
func (g *BufferGeometry) ComputeVertexNormals() {
	pos, ok := g.attributes[AttrPosition]
	if !ok {
		return
	}

	normals, ok := g.attributes[AttrNormal]
	if !ok || normals.Count() != pos.Count() {
		normals = NewFloat32BufferAttribute(pos.Count(), 3)
		g.attributes[AttrNormal] = normals
	} else {
		clear(normals.Array)
	}

	accumulate := func(a, b, c int) {
		pa := vertexAt(pos, a)
		pb := vertexAt(pos, b)
		pc := vertexAt(pos, c)
		// cross product length is twice the triangle area
		n := pc.Sub(pb).Cross(pa.Sub(pb))
		for _, i := range [3]int{a, b, c} {
			x, y, z := normals.GetXYZ(i)
			normals.SetXYZ(i, x+n[0], y+n[1], z+n[2])
		}
	}

	if g.index != nil {
		for i := 0; i+2 < len(g.index); i += 3 {
			accumulate(int(g.index[i]), int(g.index[i+1]), int(g.index[i+2]))
		}
	} else {
		for i := 0; i+2 < pos.Count(); i += 3 {
			accumulate(i, i+1, i+2)
		}
	}

	var v Vector3
	for i := 0; i < normals.Count(); i++ {
		v.Set(normals.GetXYZ(i)).Normalize()
		normals.SetXYZ(i, v.X, v.Y, v.Z)
	}
	normals.MarkNeedsUpdate()
}

func vertexAt(attr *BufferAttribute, i int) mgl64.Vec3 {
	x, y, z := attr.GetXYZ(i)
	return mgl64.Vec3{x, y, z}
}
