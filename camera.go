package ecg3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera supplies the view and projection used to render a scene.
type Camera interface {
	Node() *Object3D
	ViewMatrix() mgl64.Mat4
	ProjectionMatrix() mgl64.Mat4
	NearPlane() float64
}

// PerspectiveCamera projects with a vertical field of view given in degrees.
type PerspectiveCamera struct {
	*Object3D
	Fov    float64
	Aspect float64
	Near   float64
	Far    float64

	projection mgl64.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Object3D: NewObject3D(),
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.Name = "PerspectiveCamera"
	c.lookDownNegZ = true
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after changing Fov, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(degreesToRadians(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) SetAspect(aspect float64) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

func (c *PerspectiveCamera) Node() *Object3D              { return c.Object3D }
func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 { return c.projection }
func (c *PerspectiveCamera) NearPlane() float64           { return c.Near }

// ViewMatrix is the inverse of the camera's resolved world matrix.
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	c.UpdateWorldMatrix(true, false)
	return c.MatrixWorld.Inv()
}

type OrthographicCamera struct {
	*Object3D
	Left, Right, Top, Bottom float64
	Near, Far                float64

	projection mgl64.Mat4
}

func NewOrthographicCamera(left, right, top, bottom, near, far float64) *OrthographicCamera {
	c := &OrthographicCamera{
		Object3D: NewObject3D(),
		Left:     left,
		Right:    right,
		Top:      top,
		Bottom:   bottom,
		Near:     near,
		Far:      far,
	}
	c.Name = "OrthographicCamera"
	c.lookDownNegZ = true
	c.UpdateProjectionMatrix()
	return c
}

func (c *OrthographicCamera) UpdateProjectionMatrix() {
	c.projection = mgl64.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
}

func (c *OrthographicCamera) Node() *Object3D              { return c.Object3D }
func (c *OrthographicCamera) ProjectionMatrix() mgl64.Mat4 { return c.projection }
func (c *OrthographicCamera) NearPlane() float64           { return c.Near }

func (c *OrthographicCamera) ViewMatrix() mgl64.Mat4 {
	c.UpdateWorldMatrix(true, false)
	return c.MatrixWorld.Inv()
}
