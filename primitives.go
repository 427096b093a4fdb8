package ecg3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewBoxGeometry builds an axis-aligned box centred on the origin. Each face
// has its own four vertices so normals are flat: 24 vertices, 36 indices.
func NewBoxGeometry(width, height, depth float64) *BufferGeometry {
	half := mgl64.Vec3{width / 2, height / 2, depth / 2}
	extent := func(axis mgl64.Vec3) float64 {
		return math.Abs(axis[0])*half[0] + math.Abs(axis[1])*half[1] + math.Abs(axis[2])*half[2]
	}

	// u x v == normal, so (-u,-v) (u,-v) (u,v) (-u,v) winds counter-clockwise
	// when seen from outside.
	faces := []struct{ normal, u, v mgl64.Vec3 }{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	}

	positions := NewFloat32BufferAttribute(len(faces)*4, 3)
	normals := NewFloat32BufferAttribute(len(faces)*4, 3)
	index := make([]uint32, 0, len(faces)*6)

	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for f, face := range faces {
		centre := face.normal.Mul(extent(face.normal))
		hu := face.u.Mul(extent(face.u))
		hv := face.v.Mul(extent(face.v))
		base := f * 4
		for c, k := range corners {
			p := centre.Add(hu.Mul(k[0])).Add(hv.Mul(k[1]))
			positions.SetXYZ(base+c, p[0], p[1], p[2])
			normals.SetXYZ(base+c, face.normal[0], face.normal[1], face.normal[2])
		}
		b := uint32(base)
		index = append(index, b, b+1, b+2, b, b+2, b+3)
	}

	g := NewBufferGeometry()
	g.SetAttribute(AttrPosition, positions)
	g.SetAttribute(AttrNormal, normals)
	g.SetIndex(index)
	return g
}

// NewPlaneGeometry builds a width x height rectangle in the XY plane facing +Z.
func NewPlaneGeometry(width, height float64) *BufferGeometry {
	w, h := width/2, height/2
	positions := NewBufferAttribute([]float32{
		float32(-w), float32(h), 0,
		float32(w), float32(h), 0,
		float32(-w), float32(-h), 0,
		float32(w), float32(-h), 0,
	}, 3)
	normals := NewBufferAttribute([]float32{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	}, 3)

	g := NewBufferGeometry()
	g.SetAttribute(AttrPosition, positions)
	g.SetAttribute(AttrNormal, normals)
	g.SetIndex([]uint32{0, 2, 1, 2, 3, 1})
	return g
}

// NewSphereGeometry builds a UV sphere. Normals point away from the centre.
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *BufferGeometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	count := (widthSegments + 1) * (heightSegments + 1)
	positions := NewFloat32BufferAttribute(count, 3)
	normals := NewFloat32BufferAttribute(count, 3)

	var n Vector3
	i := 0
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			x := -radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)
			y := radius * math.Cos(v*math.Pi)
			z := radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)
			positions.SetXYZ(i, x, y, z)
			n.Set(x, y, z).Normalize()
			normals.SetXYZ(i, n.X, n.Y, n.Z)
			i++
		}
	}

	grid := func(iy, ix int) uint32 { return uint32(iy*(widthSegments+1) + ix) }
	index := make([]uint32, 0, widthSegments*heightSegments*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid(iy, ix+1)
			b := grid(iy, ix)
			c := grid(iy+1, ix)
			d := grid(iy+1, ix+1)
			// the pole rows collapse to a single triangle per segment
			if iy != 0 {
				index = append(index, a, b, d)
			}
			if iy != heightSegments-1 {
				index = append(index, b, c, d)
			}
		}
	}

	g := NewBufferGeometry()
	g.SetAttribute(AttrPosition, positions)
	g.SetAttribute(AttrNormal, normals)
	g.SetIndex(index)
	return g
}
