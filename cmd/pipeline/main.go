// Command pipeline draws two coloured triangles at different depths through a
// perspective projection, with a checkered fragment shader.
package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/smasonuk/ecg3d"
	"github.com/smasonuk/ecg3d/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "pipeline"
)

const vertexShaderSource = `
#version 410 core
in vec4 aPosition;
in vec4 aColor;
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;
out vec4 vFragColor;

void main() {
    gl_Position = uProjectionMatrix * uModelViewMatrix * aPosition;
    vFragColor = aColor;
}
`

// Alternate 5px bands between the vertex colour and its inverse, weighted
// 0.6 vertically and 0.4 horizontally.
const fragmentShaderSource = `
#version 410 core
in vec4 vFragColor;
out vec4 FragColor;

void main() {
    vec4 horizontal = mod(gl_FragCoord.x, 10.0) < 5.0 ? vFragColor : vec4(1.0, 1.0, 1.0, 2.0) - vFragColor;
    vec4 vertical = mod(gl_FragCoord.y, 10.0) < 5.0 ? vFragColor : vec4(1.0, 1.0, 1.0, 2.0) - vFragColor;
    FragColor = 0.6 * vertical + 0.4 * horizontal;
}
`

var triangles = []float32{
	// front
	-1.0, -0.5, -2.0,
	0.0, -0.5, -2.0,
	-0.5, 0.5, -2.0,

	// back
	0.0, -0.5, -3.0,
	1.0, -0.5, -3.0,
	0.5, 0.5, -3.0,
}

var colors = []float32{
	1, 0, 0, 1,
	0, 1, 0, 1,
	0, 0, 1, 1,

	1, 0, 0, 1,
	1, 0, 0, 1,
	1, 0, 0, 1,
}

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func projectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100).Mul4(mgl32.Translate3D(1, 0, 0))
}

func modelViewMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(0.52)
}

func run() error {
	window, err := opengl.OpenWindow(windowWidth, windowHeight, windowTitle)
	if err != nil {
		return err
	}
	defer window.Close()

	vao := opengl.NewVertexArray()
	defer vao.Delete()
	vao.Bind()

	positions := opengl.NewArrayBuffer(3)
	defer positions.Delete()
	positions.Sync(ecg3d.NewBufferAttribute(triangles, 3))

	vertexColors := opengl.NewArrayBuffer(4)
	defer vertexColors.Delete()
	vertexColors.Sync(ecg3d.NewBufferAttribute(colors, 4))

	program, err := opengl.NewProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	defer program.Delete()
	program.Use()
	log.Println("Shaders compiled")

	for name, buf := range map[string]*opengl.ArrayBuffer{"aPosition": positions, "aColor": vertexColors} {
		loc, err := program.AttribLocation(name)
		if err != nil {
			return err
		}
		buf.EnableAttrib(loc)
	}

	projection := projectionMatrix(window.Aspect())
	modelView := modelViewMatrix()
	log.Printf("Projection matrix:\n%v", projection)
	log.Printf("Model-view matrix:\n%v", modelView)
	if err := program.SetMat4("uProjectionMatrix", projection); err != nil {
		return err
	}
	if err := program.SetMat4("uModelViewMatrix", modelView); err != nil {
		return err
	}

	opengl.EnableDepthTest()
	return window.Run(func(t float64) error {
		opengl.Clear(color.White)
		return opengl.Draw(ecg3d.DrawTriangles, 0, positions.Count())
	})
}
