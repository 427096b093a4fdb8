package ecg3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis selectors for NewRotationMatrix.
const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

// NewRotationMatrix returns a homogeneous rotation of theta radians about one
// of the principal axes.
func NewRotationMatrix(axis int, theta float64) mgl64.Mat4 {
	switch axis {
	case ROTX:
		return mgl64.HomogRotate3DX(theta)
	case ROTY:
		return mgl64.HomogRotate3DY(theta)
	case ROTZ:
		return mgl64.HomogRotate3DZ(theta)
	}
	return mgl64.Ident4()
}

func TransMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

func ScaleMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Scale3D(x, y, z)
}

// EulerMatrix builds the rotation for XYZ-ordered Euler angles (radians),
// i.e. Rx * Ry * Rz.
func EulerMatrix(angles mgl64.Vec3) mgl64.Mat4 {
	rx := NewRotationMatrix(ROTX, angles[0])
	ry := NewRotationMatrix(ROTY, angles[1])
	rz := NewRotationMatrix(ROTZ, angles[2])
	return rx.Mul4(ry).Mul4(rz)
}

// EulerFromMatrix extracts XYZ-ordered Euler angles from the rotation part of
// m. The upper 3x3 must be unscaled.
func EulerFromMatrix(m mgl64.Mat4) mgl64.Vec3 {
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	var e mgl64.Vec3
	e[1] = math.Asin(mgl64.Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		e[0] = math.Atan2(-m23, m33)
		e[2] = math.Atan2(-m12, m11)
	} else {
		// gimbal lock
		e[0] = math.Atan2(m32, m22)
		e[2] = 0
	}
	return e
}

// ComposeMatrix returns T * R * S for a position, XYZ Euler rotation and scale.
func ComposeMatrix(position, rotation, scale mgl64.Vec3) mgl64.Mat4 {
	t := TransMatrix(position[0], position[1], position[2])
	s := ScaleMatrix(scale[0], scale[1], scale[2])
	return t.Mul4(EulerMatrix(rotation)).Mul4(s)
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m. Normals
// transformed by it stay perpendicular to their surface under non-uniform
// scale and shear. Only an exactly singular m yields the zero matrix; tiny
// but nonzero scales still give a usable matrix.
func NormalMatrix(m mgl64.Mat4) mgl64.Mat3 {
	a, b, c := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	bc, ca, ab := b.Cross(c), c.Cross(a), a.Cross(b)
	det := a.Dot(bc)
	if det == 0 {
		return mgl64.Mat3{}
	}
	// the cofactor matrix over the determinant is the inverse-transpose
	return mgl64.Mat3FromCols(bc, ca, ab).Mul(1 / det)
}

// MatrixString formats m row by row, one row per line.
func MatrixString(m mgl64.Mat4) string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < 4; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", m.At(row, col)))
		}
	}
	return sb.String()
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
