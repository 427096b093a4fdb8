package ecg3d

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

type Shading int

const (
	// ShadingLambert is diffuse only.
	ShadingLambert Shading = iota
	// ShadingPhong adds a specular highlight.
	ShadingPhong
	// ShadingUnlit ignores lights.
	ShadingUnlit
)

// Material describes how a renderable is coloured.
type Material interface {
	BaseColor() color.RGBA
}

type MeshMaterial struct {
	Color     color.RGBA
	Shading   Shading
	Shininess float64
	Side      Side
	// FlatShading uses the geometric face normal instead of vertex normals.
	FlatShading bool
}

func (m *MeshMaterial) BaseColor() color.RGBA { return m.Color }

// NewMeshStandardMaterial is a diffuse material.
func NewMeshStandardMaterial(col color.Color) *MeshMaterial {
	return &MeshMaterial{Color: toRGBA(col), Shading: ShadingLambert}
}

func NewMeshPhongMaterial(col color.Color) *MeshMaterial {
	return &MeshMaterial{Color: toRGBA(col), Shading: ShadingPhong, Shininess: 30}
}

func NewMeshBasicMaterial(col color.Color) *MeshMaterial {
	return &MeshMaterial{Color: toRGBA(col), Shading: ShadingUnlit}
}

type LineBasicMaterial struct {
	Color     color.RGBA
	LineWidth float32
	// VertexColors takes the colour of each segment from the geometry's
	// color attribute instead of Color.
	VertexColors bool
}

func (m *LineBasicMaterial) BaseColor() color.RGBA { return m.Color }

func NewLineBasicMaterial(col color.Color) *LineBasicMaterial {
	return &LineBasicMaterial{Color: toRGBA(col), LineWidth: 1}
}

// ColorHex converts a 0xRRGGBB value to an opaque colour.
func ColorHex(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255}
}

// NamedColor looks up an SVG/CSS colour name such as "pink" or "tan".
func NamedColor(name string) (color.RGBA, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ColorFloat builds an opaque colour from components in [0, 1].
func ColorFloat(r, g, b float64) color.RGBA {
	return color.RGBA{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: 255}
}

func unitToByte(v float64) uint8 {
	return uint8(clampFloat(v, 0, 1)*255 + 0.5)
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 255}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
