package ecg3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMesh(positions, normals []float32) *Object3D {
	g := NewBufferGeometry()
	if positions != nil {
		g.SetAttribute(AttrPosition, NewBufferAttribute(positions, 3))
	}
	if normals != nil {
		g.SetAttribute(AttrNormal, NewBufferAttribute(normals, 3))
	}
	return NewMesh(g, NewMeshBasicMaterial(ColorHex(0xffffff)))
}

func assertVecInDelta(t *testing.T, want, got mgl64.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, msgAndArgs...)
	}
}

func TestVertexNormalsHelperIdentity(t *testing.T) {
	box := NewMesh(NewBoxGeometry(2, 2, 2), NewMeshBasicMaterial(ColorHex(0xffffff)))
	h, err := NewVertexNormalsHelper(box, 3, ColorHex(0x00ff00))
	require.NoError(t, err)

	pos, _ := GeometryOf(box).Attribute(AttrPosition)
	nor, _ := GeometryOf(box).Attribute(AttrNormal)
	require.Equal(t, 24, h.Segments())
	for k := 0; k < h.Segments(); k++ {
		start, end := h.Segment(k)
		assertVecInDelta(t, vertexAt(pos, k), start, "segment %d start", k)
		assertVecInDelta(t, vertexAt(pos, k).Add(vertexAt(nor, k).Mul(3)), end, "segment %d end", k)
	}
}

func TestVertexNormalsHelperUnitCube(t *testing.T) {
	cube := NewMesh(NewBoxGeometry(1, 1, 1), NewMeshBasicMaterial(ColorHex(0xffffff)))
	h, err := NewVertexNormalsHelperWithDefaults(cube)
	require.NoError(t, err)

	assert.Equal(t, 24, h.Segments())
	assert.Len(t, h.Lines().Array, 24*2*3)
	assert.Equal(t, DefaultNormalColor, h.Color())
	assert.Equal(t, 1.0, h.Size())

	for k := 0; k < h.Segments(); k++ {
		start, end := h.Segment(k)
		dir := end.Sub(start)
		assert.InDelta(t, 1, dir.Len(), 1e-6, "segment %d length", k)
		// every corner of a centred cube lies on the outward side of its face
		assert.Greater(t, dir.Dot(start), 0.0, "segment %d points inward", k)
	}
}

func TestVertexNormalsHelperTransforms(t *testing.T) {
	s := float32(1 / math.Sqrt2)

	tests := []struct {
		name      string
		position  mgl64.Vec3
		rotation  mgl64.Vec3
		scale     mgl64.Vec3
		vertex    []float32
		normal    []float32
		size      float64
		wantStart mgl64.Vec3
		wantEnd   mgl64.Vec3
	}{
		{
			name:      "translation moves both ends",
			position:  mgl64.Vec3{10, 0, -5},
			scale:     mgl64.Vec3{1, 1, 1},
			vertex:    []float32{1, 2, 3},
			normal:    []float32{0, 0, 1},
			size:      2,
			wantStart: mgl64.Vec3{11, 2, -2},
			wantEnd:   mgl64.Vec3{11, 2, 0},
		},
		{
			name:      "rotation turns the normal",
			rotation:  mgl64.Vec3{0, 0, math.Pi / 2},
			scale:     mgl64.Vec3{1, 1, 1},
			vertex:    []float32{1, 0, 0},
			normal:    []float32{1, 0, 0},
			size:      1,
			wantStart: mgl64.Vec3{0, 1, 0},
			wantEnd:   mgl64.Vec3{0, 2, 0},
		},
		{
			name:      "uniform scale keeps the length",
			scale:     mgl64.Vec3{5, 5, 5},
			vertex:    []float32{1, 0, 0},
			normal:    []float32{1, 0, 0},
			size:      1,
			wantStart: mgl64.Vec3{5, 0, 0},
			wantEnd:   mgl64.Vec3{6, 0, 0},
		},
		{
			name:      "non-uniform scale uses the inverse transpose",
			scale:     mgl64.Vec3{2, 1, 1},
			vertex:    []float32{0, 0, 0},
			normal:    []float32{s, s, 0},
			size:      math.Sqrt(5),
			wantStart: mgl64.Vec3{0, 0, 0},
			wantEnd:   mgl64.Vec3{1, 2, 0},
		},
		{
			name:      "tiny uniform scale keeps a unit normal",
			scale:     mgl64.Vec3{1e-7, 1e-7, 1e-7},
			vertex:    []float32{0, 0, 0},
			normal:    []float32{0, 0, 1},
			size:      1,
			wantStart: mgl64.Vec3{0, 0, 0},
			wantEnd:   mgl64.Vec3{0, 0, 1},
		},
		{
			name:      "singular matrix collapses the segment",
			scale:     mgl64.Vec3{0, 1, 1},
			vertex:    []float32{3, 4, 5},
			normal:    []float32{1, 0, 0},
			size:      1,
			wantStart: mgl64.Vec3{0, 4, 5},
			wantEnd:   mgl64.Vec3{0, 4, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestMesh(tt.vertex, tt.normal)
			o.Position = tt.position
			o.Rotation = tt.rotation
			o.Scale = tt.scale

			h, err := NewVertexNormalsHelper(o, tt.size, ColorHex(0xff0000))
			require.NoError(t, err)
			start, end := h.Segment(0)
			assertVecInDelta(t, tt.wantStart, start)
			assertVecInDelta(t, tt.wantEnd, end)
		})
	}
}

func TestVertexNormalsHelperNonUniformScaleStaysPerpendicular(t *testing.T) {
	// a 45 degree slope in the XY plane, tangent (1,-1,0), normal (1,1,0)
	s := float32(1 / math.Sqrt2)
	o := newTestMesh([]float32{0, 0, 0}, []float32{s, s, 0})
	o.SetScale(3, 1, 0.5)

	h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
	require.NoError(t, err)

	start, end := h.Segment(0)
	n := end.Sub(start)
	tangent := mgl64.Vec3{3, -1, 0}
	assert.InDelta(t, 0, n.Dot(tangent), 1e-6)
	assert.InDelta(t, 1, n.Len(), 1e-6)
}

func TestVertexNormalsHelperUpdateIsIdempotent(t *testing.T) {
	o := NewMesh(NewSphereGeometry(2, 8, 6), NewMeshBasicMaterial(ColorHex(0xffffff)))
	o.SetPosition(1, 2, 3)
	o.SetRotation(0.3, 0.2, 0.1)

	h, err := NewVertexNormalsHelper(o, 0.5, ColorHex(0xff0000))
	require.NoError(t, err)

	first := append([]float32(nil), h.Lines().Array...)
	version := h.Lines().Version()

	require.NoError(t, h.Update())
	assert.Equal(t, first, h.Lines().Array)
	assert.Equal(t, version+1, h.Lines().Version())

	require.NoError(t, h.Update())
	assert.Equal(t, first, h.Lines().Array)
	assert.Equal(t, version+2, h.Lines().Version())
}

func TestVertexNormalsHelperFollowsSource(t *testing.T) {
	o := newTestMesh([]float32{0, 0, 0}, []float32{0, 1, 0})
	h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
	require.NoError(t, err)

	o.SetPosition(0, 0, 7)
	start, _ := h.Segment(0)
	assertVecInDelta(t, mgl64.Vec3{0, 0, 0}, start, "segments only move on Update")

	require.NoError(t, h.Update())
	start, end := h.Segment(0)
	assertVecInDelta(t, mgl64.Vec3{0, 0, 7}, start)
	assertVecInDelta(t, mgl64.Vec3{0, 1, 7}, end)
}

func TestVertexNormalsHelperResolvesParentChain(t *testing.T) {
	root := NewObject3D()
	parent := NewObject3D()
	root.Add(parent)
	o := newTestMesh([]float32{1, 0, 0}, []float32{1, 0, 0})
	parent.Add(o)

	parent.SetPosition(0, 10, 0)
	root.SetRotation(0, 0, math.Pi/2)

	h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
	require.NoError(t, err)

	// no UpdateMatrixWorld call anywhere: Update resolves the ancestors itself
	start, end := h.Segment(0)
	assertVecInDelta(t, mgl64.Vec3{-10, 1, 0}, start)
	assertVecInDelta(t, mgl64.Vec3{-10, 2, 0}, end)

	parent.SetPosition(0, 20, 0)
	require.NoError(t, h.Update())
	start, _ = h.Segment(0)
	assertVecInDelta(t, mgl64.Vec3{-20, 1, 0}, start)
}

func TestVertexNormalsHelperLeavesSourceAlone(t *testing.T) {
	o := NewMesh(NewBoxGeometry(1, 2, 3), NewMeshBasicMaterial(ColorHex(0xffffff)))
	o.SetScale(2, 3, 4)
	pos, _ := GeometryOf(o).Attribute(AttrPosition)
	nor, _ := GeometryOf(o).Attribute(AttrNormal)
	wantPos := append([]float32(nil), pos.Array...)
	wantNor := append([]float32(nil), nor.Array...)
	posVersion, norVersion := pos.Version(), nor.Version()

	h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
	require.NoError(t, err)
	require.NoError(t, h.Update())

	assert.Equal(t, wantPos, pos.Array)
	assert.Equal(t, wantNor, nor.Array)
	assert.Equal(t, posVersion, pos.Version())
	assert.Equal(t, norVersion, nor.Version())
	assert.Equal(t, mgl64.Vec3{2, 3, 4}, o.Scale)
}

func TestVertexNormalsHelperNode(t *testing.T) {
	o := NewMesh(NewPlaneGeometry(4, 4), NewMeshBasicMaterial(ColorHex(0xffffff)))
	h, err := NewVertexNormalsHelper(o, 2, ColorHex(0x00ff00))
	require.NoError(t, err)

	node := h.Node()
	assert.False(t, node.MatrixAutoUpdate)
	assert.Equal(t, mgl64.Ident4(), node.Matrix)
	assert.Same(t, h, node.Renderable)
	assert.Equal(t, DrawLines, h.Mode())
	assert.Equal(t, ColorHex(0x00ff00), h.Material().BaseColor())
	assert.Same(t, o, h.Object())

	lines, ok := h.Geometry().Attribute(AttrPosition)
	require.True(t, ok)
	assert.Same(t, h.Lines(), lines)
}

func TestVertexNormalsHelperEmptyMesh(t *testing.T) {
	o := newTestMesh([]float32{}, []float32{})
	h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Segments())
	assert.Empty(t, h.Lines().Array)
	assert.NoError(t, h.Update())
}

func TestVertexNormalsHelperConstructionErrors(t *testing.T) {
	disposed := newTestMesh([]float32{0, 0, 0}, []float32{0, 0, 1})
	disposed.Dispose()

	narrowNormals := newTestMesh([]float32{0, 0, 0, 1, 1, 1}, nil)
	GeometryOf(narrowNormals).SetAttribute(AttrNormal, NewBufferAttribute([]float32{0, 0, 1, 0}, 2))

	nilNormals := newTestMesh([]float32{0, 0, 0}, nil)
	GeometryOf(nilNormals).SetAttribute(AttrNormal, nil)

	tests := []struct {
		name   string
		object *Object3D
		want   error
	}{
		{"nil object", nil, ErrNoGeometry},
		{"plain node", NewObject3D(), ErrNoGeometry},
		{"missing normal", newTestMesh([]float32{0, 0, 0}, nil), ErrMissingAttribute},
		{"missing position", newTestMesh(nil, []float32{0, 0, 1}), ErrMissingAttribute},
		{"count mismatch", newTestMesh([]float32{0, 0, 0, 1, 1, 1}, []float32{0, 0, 1}), ErrAttributeMismatch},
		{"disposed", disposed, ErrStaleObject},
		{"two-component normals", narrowNormals, ErrAttributeMismatch},
		{"nil normal attribute", nilNormals, ErrMissingAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewVertexNormalsHelper(tt.object, 1, ColorHex(0xff0000))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, h)
		})
	}
}

func TestVertexNormalsHelperStaleSource(t *testing.T) {
	t.Run("disposed", func(t *testing.T) {
		o := newTestMesh([]float32{0, 0, 0}, []float32{0, 0, 1})
		h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
		require.NoError(t, err)

		o.Dispose()
		assert.ErrorIs(t, h.Update(), ErrStaleObject)
	})

	t.Run("vertex count changed", func(t *testing.T) {
		o := newTestMesh([]float32{0, 0, 0}, []float32{0, 0, 1})
		h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
		require.NoError(t, err)

		g := GeometryOf(o)
		g.SetAttribute(AttrPosition, NewBufferAttribute([]float32{0, 0, 0, 1, 0, 0}, 3))
		g.SetAttribute(AttrNormal, NewBufferAttribute([]float32{0, 0, 1, 0, 0, 1}, 3))

		version := h.Lines().Version()
		assert.ErrorIs(t, h.Update(), ErrStaleObject)
		assert.Equal(t, version, h.Lines().Version(), "a failed update leaves the buffer alone")
	})

	t.Run("normal removed", func(t *testing.T) {
		o := newTestMesh([]float32{0, 0, 0}, []float32{0, 0, 1})
		h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
		require.NoError(t, err)

		GeometryOf(o).DeleteAttribute(AttrNormal)
		assert.ErrorIs(t, h.Update(), ErrStaleObject)
	})

	t.Run("normal item size shrunk", func(t *testing.T) {
		o := newTestMesh([]float32{0, 0, 0, 1, 1, 1}, []float32{0, 0, 1, 0, 0, 1})
		h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
		require.NoError(t, err)

		GeometryOf(o).SetAttribute(AttrNormal, NewBufferAttribute([]float32{0, 0, 1, 0}, 2))
		err = h.Update()
		assert.ErrorIs(t, err, ErrStaleObject)
		assert.ErrorIs(t, err, ErrAttributeMismatch)
	})

	t.Run("parent disposed", func(t *testing.T) {
		parent := NewObject3D()
		o := newTestMesh([]float32{0, 0, 0}, []float32{0, 0, 1})
		parent.Add(o)
		h, err := NewVertexNormalsHelper(o, 1, ColorHex(0xff0000))
		require.NoError(t, err)

		parent.Dispose()
		assert.ErrorIs(t, h.Update(), ErrStaleObject)
	})
}
