package opengl

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window with a current OpenGL 4.1 core context. GLFW must
// be driven from the main thread, so callers lock it with
// runtime.LockOSThread in an init function.
type Window struct {
	*glfw.Window
	width, height int
}

// OpenWindow initialises GLFW and GL and opens a window. Close releases both.
func OpenWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		w.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return &Window{Window: w, width: width, height: height}, nil
}

// Aspect is width over height of the framebuffer.
func (w *Window) Aspect() float32 {
	fw, fh := w.GetFramebufferSize()
	if fh == 0 {
		return float32(w.width) / float32(w.height)
	}
	return float32(fw) / float32(fh)
}

// Run calls frame with the time since GLFW started, in seconds, until the
// window is closed or frame returns an error.
func (w *Window) Run(frame func(t float64) error) error {
	for !w.ShouldClose() {
		fw, fh := w.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		if err := frame(glfw.GetTime()); err != nil {
			return err
		}
		w.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
