package ecg3d

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game runs a scene in an ebiten window. OnFrame is called once per tick
// with the elapsed time in seconds, before the frame is drawn.
type Game struct {
	Scene    *Scene
	Camera   Camera
	Renderer *Renderer
	OnFrame  func(t float64) error
	ShowFPS  bool

	// OrbitTarget is the point the camera circles when the left mouse
	// button is dragged.
	OrbitTarget mgl64.Vec3

	ticks        int
	isDragging   bool
	lastX, lastY int
}

func NewGame(scene *Scene, cam Camera, width, height int) *Game {
	log.Printf("Game: %dx%d", width, height)
	return &Game{
		Scene:    scene,
		Camera:   cam,
		Renderer: NewRenderer(width, height),
		ShowFPS:  true,
	}
}

// Elapsed is the simulated time in seconds.
func (g *Game) Elapsed() float64 {
	return float64(g.ticks) / float64(ebiten.TPS())
}

func (g *Game) Update() error {
	if g.OnFrame != nil {
		if err := g.OnFrame(g.Elapsed()); err != nil {
			return fmt.Errorf("frame %d: %w", g.ticks, err)
		}
	}
	g.ticks++

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.isDragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.isDragging {
		x, y := ebiten.CursorPosition()
		dx := float64(x-g.lastX) / 200.0
		dy := float64(y-g.lastY) / 200.0
		g.Orbit(dx, dy)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.isDragging = false
	}
	return nil
}

// Orbit swings the camera around OrbitTarget, keeping its distance.
// Elevation is limited short of the poles.
func (g *Game) Orbit(dAzimuth, dElevation float64) {
	node := g.Camera.Node()
	offset := node.Position.Sub(g.OrbitTarget)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	azimuth := math.Atan2(offset[0], offset[2]) - dAzimuth
	elevation := math.Asin(clampFloat(offset[1]/radius, -1, 1)) + dElevation
	elevation = clampFloat(elevation, -math.Pi/2+0.01, math.Pi/2-0.01)

	node.Position = g.OrbitTarget.Add(mgl64.Vec3{
		radius * math.Cos(elevation) * math.Sin(azimuth),
		radius * math.Sin(elevation),
		radius * math.Cos(elevation) * math.Cos(azimuth),
	})
	node.LookAt(g.OrbitTarget)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Renderer.Render(screen, g.Scene, g.Camera)
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Renderer.Size()
}
