package ecg3d

// NewAxesHelper returns a node drawing the local X, Y and Z axes of whatever
// it is attached to, in red, green and blue, each size long.
func NewAxesHelper(size float64) *Object3D {
	s := float32(size)
	positions := NewBufferAttribute([]float32{
		0, 0, 0, s, 0, 0,
		0, 0, 0, 0, s, 0,
		0, 0, 0, 0, 0, s,
	}, 3)
	colors := NewBufferAttribute([]float32{
		1, 0, 0, 1, 0.6, 0,
		0, 1, 0, 0.6, 1, 0,
		0, 0, 1, 0, 0.6, 1,
	}, 3)

	g := NewBufferGeometry()
	g.SetAttribute(AttrPosition, positions)
	g.SetAttribute(AttrColor, colors)

	m := NewLineBasicMaterial(ColorHex(0xffffff))
	m.VertexColors = true

	o := NewLineSegments(g, m)
	o.Name = "AxesHelper"
	return o
}
