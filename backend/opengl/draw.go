package opengl

import (
	"fmt"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/smasonuk/ecg3d"
)

// Clear fills the colour and depth buffers.
func Clear(col color.Color) {
	r, g, b, a := col.RGBA()
	gl.ClearColor(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// EnableDepthTest turns on depth testing with LEQUAL.
func EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
}

// Draw issues one non-indexed draw of count vertices starting at first.
func Draw(mode ecg3d.DrawMode, first, count int) error {
	glMode, err := primitive(mode)
	if err != nil {
		return err
	}
	gl.DrawArrays(glMode, int32(first), int32(count))
	return nil
}

func primitive(mode ecg3d.DrawMode) (uint32, error) {
	switch mode {
	case ecg3d.DrawTriangles:
		return gl.TRIANGLES, nil
	case ecg3d.DrawLines:
		return gl.LINES, nil
	case ecg3d.DrawLineStrip:
		return gl.LINE_STRIP, nil
	case ecg3d.DrawLineLoop:
		return gl.LINE_LOOP, nil
	case ecg3d.DrawPoints:
		return gl.POINTS, nil
	}
	return 0, fmt.Errorf("unknown draw mode %d", mode)
}
