package ecg3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a mutable 3D vector. Its methods modify the receiver and return
// it so that a transform can be written as one chain without allocating.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func (v *Vector3) Set(x, y, z float64) *Vector3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

func (v *Vector3) Add(o *Vector3) *Vector3 {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
	return v
}

func (v *Vector3) MultiplyScalar(s float64) *Vector3 {
	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

// ApplyMatrix4 transforms v as a point (w = 1), including the perspective
// divide when the bottom row is not (0, 0, 0, 1).
func (v *Vector3) ApplyMatrix4(m mgl64.Mat4) *Vector3 {
	x, y, z := v.X, v.Y, v.Z
	w := m[3]*x + m[7]*y + m[11]*z + m[15]
	if w == 0 {
		w = 1
	}
	v.X = (m[0]*x + m[4]*y + m[8]*z + m[12]) / w
	v.Y = (m[1]*x + m[5]*y + m[9]*z + m[13]) / w
	v.Z = (m[2]*x + m[6]*y + m[10]*z + m[14]) / w
	return v
}

// ApplyMatrix3 transforms v as a direction.
func (v *Vector3) ApplyMatrix3(m mgl64.Mat3) *Vector3 {
	x, y, z := v.X, v.Y, v.Z
	v.X = m[0]*x + m[3]*y + m[6]*z
	v.Y = m[1]*x + m[4]*y + m[7]*z
	v.Z = m[2]*x + m[5]*y + m[8]*z
	return v
}

func (v *Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize scales v to unit length. The zero vector is left unchanged.
func (v *Vector3) Normalize() *Vector3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	v.X /= length
	v.Y /= length
	v.Z /= length
	return v
}

func (v *Vector3) Copy() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v *Vector3) DistanceTo(other *Vector3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (v *Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func Vector3FromVec3(v mgl64.Vec3) *Vector3 {
	return &Vector3{X: v[0], Y: v[1], Z: v[2]}
}
