package ecg3d

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Light is attached to a scene node through Object3D.Light.
type Light interface {
	LightColor() color.RGBA
	LightIntensity() float64
}

// DirectionalLight shines parallel rays from its position towards Target.
type DirectionalLight struct {
	*Object3D
	Color     color.RGBA
	Intensity float64
	Target    *Object3D
}

func NewDirectionalLight(col color.Color, intensity float64) *DirectionalLight {
	l := &DirectionalLight{
		Object3D:  NewObject3D(),
		Color:     toRGBA(col),
		Intensity: intensity,
		Target:    NewObject3D(),
	}
	l.Name = "DirectionalLight"
	l.Position = mgl64.Vec3{0, 1, 0}
	l.Object3D.Light = l
	return l
}

func (l *DirectionalLight) LightColor() color.RGBA  { return l.Color }
func (l *DirectionalLight) LightIntensity() float64 { return l.Intensity }

// Direction is the unit vector from the target towards the light, in world
// space.
func (l *DirectionalLight) Direction() mgl64.Vec3 {
	d := l.WorldPosition().Sub(l.Target.WorldPosition())
	if d.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	*Object3D
	Color     color.RGBA
	Intensity float64
}

func NewAmbientLight(col color.Color, intensity float64) *AmbientLight {
	l := &AmbientLight{
		Object3D:  NewObject3D(),
		Color:     toRGBA(col),
		Intensity: intensity,
	}
	l.Name = "AmbientLight"
	l.Object3D.Light = l
	return l
}

func (l *AmbientLight) LightColor() color.RGBA  { return l.Color }
func (l *AmbientLight) LightIntensity() float64 { return l.Intensity }
