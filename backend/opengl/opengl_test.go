package opengl

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/ecg3d"
)

func TestPrimitive(t *testing.T) {
	tests := []struct {
		mode ecg3d.DrawMode
		want uint32
	}{
		{ecg3d.DrawTriangles, gl.TRIANGLES},
		{ecg3d.DrawLines, gl.LINES},
		{ecg3d.DrawLineStrip, gl.LINE_STRIP},
		{ecg3d.DrawLineLoop, gl.LINE_LOOP},
		{ecg3d.DrawPoints, gl.POINTS},
	}
	for _, tt := range tests {
		got, err := primitive(tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := primitive(ecg3d.DrawMode(99))
	assert.Error(t, err)
}

func TestTerminate(t *testing.T) {
	assert.Equal(t, "aPosition\x00", terminate("aPosition"))
	assert.Equal(t, "aPosition\x00", terminate("aPosition\x00"))
	assert.Equal(t, "\x00", terminate(""))
}

func TestNeedsUpload(t *testing.T) {
	attr := ecg3d.NewBufferAttribute([]float32{0, 0, 0}, 3)

	assert.True(t, needsUpload(-1, attr), "never uploaded")
	assert.False(t, needsUpload(attr.Version(), attr))

	uploaded := attr.Version()
	attr.MarkNeedsUpdate()
	assert.True(t, needsUpload(uploaded, attr))

	assert.False(t, needsUpload(-1, ecg3d.NewBufferAttribute([]float32{0, 0, 0}, 0)), "no item size")

	assert.False(t, needsUpload(-1, nil))
}

func TestItemCount(t *testing.T) {
	tests := []struct {
		n        int
		itemSize int32
		want     int32
	}{
		{18, 3, 6},
		{24, 4, 6},
		{7, 3, 2},
		{0, 3, 0},
		{9, 0, 0},
		{9, -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, itemCount(tt.n, tt.itemSize), "%d floats, item size %d", tt.n, tt.itemSize)
	}
}
