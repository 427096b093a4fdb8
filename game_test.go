package ecg3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestGameOrbit(t *testing.T) {
	cam := NewPerspectiveCamera(55, 1, 0.1, 100)
	cam.SetPosition(0, 0, 10)
	g := NewGame(NewScene(), cam, 640, 480)

	g.Orbit(math.Pi/2, 0)
	assertVecInDelta(t, mgl64.Vec3{-10, 0, 0}, cam.Position)

	cam.UpdateMatrixWorld()
	forward := cam.MatrixWorld.Mat3().Mul3x1(mgl64.Vec3{0, 0, -1})
	assertVecInDelta(t, mgl64.Vec3{1, 0, 0}, forward)

	// elevation stops short of the pole
	g.Orbit(0, math.Pi)
	assert.InDelta(t, 10, cam.Position.Len(), 1e-9)
	assert.Less(t, cam.Position[1], 10.0)
	assert.Greater(t, cam.Position[1], 9.9)
}

func TestGameOrbitAroundTarget(t *testing.T) {
	cam := NewPerspectiveCamera(55, 1, 0.1, 100)
	cam.SetPosition(5, 0, 3)
	g := NewGame(NewScene(), cam, 640, 480)
	g.OrbitTarget = mgl64.Vec3{5, 0, 0}

	g.Orbit(math.Pi, 0)
	assertVecInDelta(t, mgl64.Vec3{5, 0, -3}, cam.Position)

	// a camera sitting on the target has no orbit
	g.OrbitTarget = cam.Position
	g.Orbit(1, 1)
	assertVecInDelta(t, mgl64.Vec3{5, 0, -3}, cam.Position)
}

func TestGameLayout(t *testing.T) {
	g := NewGame(NewScene(), NewPerspectiveCamera(55, 1, 0.1, 100), 640, 480)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.True(t, g.ShowFPS)
}
