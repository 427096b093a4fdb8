package ecg3d

import "image/color"

// Scene is the root of a scene graph plus the settings that apply to the
// whole frame.
type Scene struct {
	*Object3D
	Background color.RGBA
	Fog        *Fog
}

func NewScene() *Scene {
	s := &Scene{
		Object3D:   NewObject3D(),
		Background: color.RGBA{A: 255},
	}
	s.Name = "Scene"
	return s
}

// Lights returns the lights in visible subtrees.
func (s *Scene) Lights() []Light {
	var lights []Light
	s.TraverseVisible(func(o *Object3D) {
		if o.Light != nil {
			lights = append(lights, o.Light)
		}
	})
	return lights
}

// Fog blends colours linearly towards Color between Near and Far, measured
// as view-space distance along the camera axis.
type Fog struct {
	Color color.RGBA
	Near  float64
	Far   float64
}

func NewFog(col color.Color, near, far float64) *Fog {
	return &Fog{Color: toRGBA(col), Near: near, Far: far}
}

// Factor is 0 at Near (no fog) and 1 at Far (fully fogged).
func (f *Fog) Factor(depth float64) float64 {
	if f.Far <= f.Near {
		if depth >= f.Far {
			return 1
		}
		return 0
	}
	return clampFloat((depth-f.Near)/(f.Far-f.Near), 0, 1)
}

// Apply mixes c towards the fog colour for depth.
func (f *Fog) Apply(c color.RGBA, depth float64) color.RGBA {
	t := f.Factor(depth)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-t) + float64(b)*t + 0.5)
	}
	return color.RGBA{R: mix(c.R, f.Color.R), G: mix(c.G, f.Color.G), B: mix(c.B, f.Color.B), A: c.A}
}
