package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/ecg3d"
)

func TestNewEarth(t *testing.T) {
	e, err := newEarth(DefaultConfig())
	require.NoError(t, err)

	require.NotNil(t, e.scene.Fog)
	assert.Equal(t, ecg3d.ColorFloat(0.3, 0.5, 0.8), e.scene.Background)
	assert.Equal(t, mgl64.Vec3{0, 8, 30}, e.camera.Position)
	assert.Len(t, e.scene.Lights(), 2)
	assert.Same(t, e.plane, e.light.Target)

	assertVec := func(want, got mgl64.Vec3) {
		t.Helper()
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-6)
		}
	}
	assertVec(mgl64.Vec3{1, -2, 0}, e.plane.Position)
	assertVec(mgl64.Vec3{5, 5, 0}, e.cube.Position)
	assertVec(mgl64.Vec3{-6, 7, 0}, e.sphere.Position)

	// the plane lies flat, so every normal points straight up with length 2
	require.Equal(t, 4, e.normals.Segments())
	for k := 0; k < e.normals.Segments(); k++ {
		start, end := e.normals.Segment(k)
		assertVec(mgl64.Vec3{0, 2, 0}, end.Sub(start))
		assert.InDelta(t, -2, start[1], 1e-6)
	}
	assert.Equal(t, ecg3d.ColorHex(0x00ff00), e.normals.Color())
}

func TestNewEarthWithoutFog(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fog.Enabled = false
	e, err := newEarth(cfg)
	require.NoError(t, err)
	assert.Nil(t, e.scene.Fog)
}

func TestEarthAnimate(t *testing.T) {
	e, err := newEarth(DefaultConfig())
	require.NoError(t, err)
	version := e.normals.Lines().Version()

	require.NoError(t, e.animate(math.Pi/2))
	assert.InDelta(t, 0.01, e.cube.Rotation[2], 1e-12)
	assert.InDelta(t, 0.01, e.sphere.Rotation[1], 1e-12)
	assert.InDelta(t, 0, e.light.Position[0], 1e-9)
	assert.InDelta(t, 20, e.light.Position[1], 1e-9)
	assert.Equal(t, version+1, e.normals.Lines().Version())

	e.plane.Dispose()
	assert.ErrorIs(t, e.animate(1), ecg3d.ErrStaleObject)
}

func TestEarthBuildsAFrame(t *testing.T) {
	cfg := DefaultConfig()
	e, err := newEarth(cfg)
	require.NoError(t, err)

	dl := ecg3d.NewRenderer(cfg.Width, cfg.Height).Build(e.scene, e.camera)
	assert.NotZero(t, dl.Count(ecg3d.ItemPolygon))
	assert.NotZero(t, dl.Count(ecg3d.ItemLine))
}

const tetrahedronPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 4
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
0 0 1
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`

func TestNewEarthWithModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model.Path = writeModel(t, tetrahedronPLY)
	cfg.Model.Scale = 2

	e, err := newEarth(cfg)
	require.NoError(t, err)
	require.NotNil(t, e.model)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, e.model.Scale)
	assert.Equal(t, 4, e.modelNormals.Segments())

	require.NoError(t, e.animate(0))
	assert.InDelta(t, 0.01, e.model.Rotation[1], 1e-12)

	e.model.Dispose()
	assert.ErrorIs(t, e.animate(0), ecg3d.ErrStaleObject)
}

func TestNewEarthWithBadModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model.Path = writeModel(t, "ply\nformat binary_little_endian 1.0\nend_header\n")
	_, err := newEarth(cfg)
	assert.ErrorIs(t, err, ecg3d.ErrBadPLY)
}

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.ply")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
