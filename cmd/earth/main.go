// Command earth shows a cube, a sphere and a ground plane with their
// coordinate systems, the plane's vertex normals, fog and a circling light.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/ecg3d"
)

const (
	planeSize    = 32
	cubeSize     = 4
	sphereRadius = 5
	sphereSegs   = 32
)

type earth struct {
	scene   *ecg3d.Scene
	camera  *ecg3d.PerspectiveCamera
	plane   *ecg3d.Object3D
	cube    *ecg3d.Object3D
	sphere  *ecg3d.Object3D
	light   *ecg3d.DirectionalLight
	normals *ecg3d.VertexNormalsHelper

	model        *ecg3d.Object3D
	modelNormals *ecg3d.VertexNormalsHelper
}

func newEarth(cfg Config) (*earth, error) {
	e := &earth{scene: ecg3d.NewScene()}
	e.scene.Background = ecg3d.ColorFloat(0.3, 0.5, 0.8)
	if cfg.Fog.Enabled {
		fogColor, err := parseColor(cfg.Fog.Color)
		if err != nil {
			return nil, err
		}
		e.scene.Fog = ecg3d.NewFog(fogColor, cfg.Fog.Near, cfg.Fog.Far)
	}

	aspect := float64(cfg.Width) / float64(cfg.Height)
	e.camera = ecg3d.NewPerspectiveCamera(cfg.Camera.Fov, aspect, cfg.Camera.Near, cfg.Camera.Far)
	e.camera.Position = mgl64.Vec3(cfg.Camera.Position)
	log.Printf("Projection matrix:\n%s", ecg3d.MatrixString(e.camera.ProjectionMatrix()))

	log.Println("Creating geometry...")
	planeGeometry := ecg3d.NewPlaneGeometry(planeSize, planeSize)
	planeGeometry.ComputeVertexNormals()
	cubeGeometry := ecg3d.NewBoxGeometry(cubeSize, cubeSize, cubeSize)
	sphereGeometry := ecg3d.NewSphereGeometry(sphereRadius, sphereSegs, sphereSegs)

	grey, _ := ecg3d.NamedColor("grey")
	pink, _ := ecg3d.NamedColor("pink")
	tan, _ := ecg3d.NamedColor("tan")

	e.light = ecg3d.NewDirectionalLight(ecg3d.ColorHex(0xffffff), 1)
	e.light.SetPosition(0, 30, 30)
	e.scene.Add(e.light.Object3D)
	e.scene.Add(ecg3d.NewAmbientLight(ecg3d.ColorHex(0xaaaaff), 0.2).Object3D)

	planeMaterial := ecg3d.NewMeshStandardMaterial(grey)
	planeMaterial.Side = ecg3d.DoubleSide
	e.plane = ecg3d.NewMesh(planeGeometry, planeMaterial)
	e.plane.Name = "plane"
	e.plane.TranslateY(-2)
	e.plane.TranslateX(1)
	e.plane.Rotation[0] = mgl64.DegToRad(-90)
	e.plane.Rotation[2] = mgl64.DegToRad(45)
	e.light.Target = e.plane
	e.scene.Add(e.light.Target)

	e.cube = ecg3d.NewMesh(cubeGeometry, ecg3d.NewMeshPhongMaterial(pink))
	e.cube.Name = "cube"
	e.cube.SetPosition(cubeSize+1, cubeSize+1, 0)
	e.scene.Add(e.cube)

	e.sphere = ecg3d.NewMesh(sphereGeometry, ecg3d.NewMeshStandardMaterial(tan))
	e.sphere.Name = "sphere"
	e.sphere.SetPosition(-sphereRadius-1, sphereRadius+2, 0)
	e.scene.Add(e.sphere)

	e.scene.Add(ecg3d.NewAxesHelper(10))
	e.cube.Add(ecg3d.NewAxesHelper(5))
	e.sphere.Add(ecg3d.NewAxesHelper(7))
	e.plane.Add(ecg3d.NewAxesHelper(4))

	normalColor, err := parseColor(cfg.Normals.Color)
	if err != nil {
		return nil, err
	}
	e.normals, err = ecg3d.NewVertexNormalsHelper(e.plane, cfg.Normals.Size, normalColor)
	if err != nil {
		return nil, fmt.Errorf("plane normals: %w", err)
	}
	e.scene.Add(e.normals.Node())

	if cfg.Model.Path != "" {
		if err := e.addModel(cfg.Model, cfg.Normals.Size, normalColor); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *earth) addModel(cfg ModelConfig, normalSize float64, normalColor color.RGBA) error {
	log.Printf("Loading model %s", cfg.Path)
	geometry, err := ecg3d.LoadPLYFile(cfg.Path)
	if err != nil {
		return err
	}
	modelColor, err := parseColor(cfg.Color)
	if err != nil {
		return err
	}
	e.model = ecg3d.NewMesh(geometry, ecg3d.NewMeshPhongMaterial(modelColor))
	e.model.Name = "model"
	e.model.Position = mgl64.Vec3(cfg.Position)
	e.model.Scale = mgl64.Vec3{cfg.Scale, cfg.Scale, cfg.Scale}
	e.scene.Add(e.model)

	e.modelNormals, err = ecg3d.NewVertexNormalsHelper(e.model, normalSize, normalColor)
	if err != nil {
		return fmt.Errorf("model normals: %w", err)
	}
	e.scene.Add(e.modelNormals.Node())
	return nil
}

// animate advances the scene to time t in seconds. It is called once per
// tick, so the spin is per tick rather than per second.
func (e *earth) animate(t float64) error {
	e.cube.Rotation = e.cube.Rotation.Add(mgl64.Vec3{0.01, 0.01, 0.01})
	e.sphere.Rotation[1] += 0.01

	e.light.Position[0] = 20 * math.Cos(t)
	e.light.Position[1] = 20 * math.Sin(t)

	if e.model != nil {
		e.model.Rotation[1] += 0.01
		if err := e.modelNormals.Update(); err != nil {
			return err
		}
	}
	return e.normals.Update()
}

func main() {
	configPath := flag.String("config", "", "TOML file overriding the default settings")
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Initializing scene...")
	e, err := newEarth(cfg)
	if err != nil {
		log.Fatal(err)
	}

	game := ecg3d.NewGame(e.scene, e.camera, cfg.Width, cfg.Height)
	game.OnFrame = e.animate
	game.ShowFPS = cfg.ShowFPS
	log.Println("Initialization Complete.")

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
