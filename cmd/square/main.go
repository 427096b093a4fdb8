// Command square draws the outline of a square, built from two triangles'
// worth of vertices, as a red line loop on white.
package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"runtime"

	"github.com/smasonuk/ecg3d"
	"github.com/smasonuk/ecg3d/backend/opengl"
)

const (
	windowWidth  = 640
	windowHeight = 480
	windowTitle  = "square"
)

const vertexShaderSource = `
#version 410 core
in vec4 aPosition;

void main() {
    gl_Position = aPosition;
}
`

const fragmentShaderSource = `
#version 410 core
out vec4 FragColor;

void main() {
    FragColor = vec4(1, 0, 0, 1);
}
`

var square = []float32{
	-0.3, -0.3, -0.3,
	0.3, -0.3, -0.3,
	0.3, 0.3, -0.3,

	-0.3, -0.3, -0.3,
	-0.3, 0.3, -0.3,
	0.3, 0.3, -0.3,
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

func run() error {
	window, err := opengl.OpenWindow(windowWidth, windowHeight, windowTitle)
	if err != nil {
		return err
	}
	defer window.Close()

	positions := ecg3d.NewBufferAttribute(square, 3)

	vao := opengl.NewVertexArray()
	defer vao.Delete()
	vao.Bind()

	buf := opengl.NewArrayBuffer(positions.ItemSize)
	defer buf.Delete()
	buf.Sync(positions)

	program, err := opengl.NewProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return fmt.Errorf("square: %w", err)
	}
	defer program.Delete()
	program.Use()
	log.Println("Shaders compiled")

	loc, err := program.AttribLocation("aPosition")
	if err != nil {
		return err
	}
	buf.EnableAttrib(loc)

	return window.Run(func(t float64) error {
		opengl.Clear(color.White)
		return opengl.Draw(ecg3d.DrawLineLoop, 0, positions.Count())
	})
}
