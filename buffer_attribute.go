package ecg3d

// BufferAttribute is a flat float32 array interpreted as Count() items of
// ItemSize components each, laid out the way a GPU vertex buffer expects.
type BufferAttribute struct {
	Array    []float32
	ItemSize int
	version  int
}

// NewBufferAttribute wraps array. len(array) should be a multiple of itemSize.
func NewBufferAttribute(array []float32, itemSize int) *BufferAttribute {
	return &BufferAttribute{Array: array, ItemSize: itemSize}
}

// NewFloat32BufferAttribute allocates a zeroed attribute of count items.
func NewFloat32BufferAttribute(count, itemSize int) *BufferAttribute {
	return &BufferAttribute{Array: make([]float32, count*itemSize), ItemSize: itemSize}
}

func (a *BufferAttribute) Count() int {
	if a.ItemSize == 0 {
		return 0
	}
	return len(a.Array) / a.ItemSize
}

func (a *BufferAttribute) GetX(i int) float64 { return float64(a.Array[i*a.ItemSize]) }
func (a *BufferAttribute) GetY(i int) float64 { return float64(a.Array[i*a.ItemSize+1]) }
func (a *BufferAttribute) GetZ(i int) float64 { return float64(a.Array[i*a.ItemSize+2]) }

func (a *BufferAttribute) GetXYZ(i int) (x, y, z float64) {
	o := i * a.ItemSize
	return float64(a.Array[o]), float64(a.Array[o+1]), float64(a.Array[o+2])
}

func (a *BufferAttribute) SetXYZ(i int, x, y, z float64) {
	o := i * a.ItemSize
	a.Array[o] = float32(x)
	a.Array[o+1] = float32(y)
	a.Array[o+2] = float32(z)
}

// MarkNeedsUpdate flags the contents as changed. Backends that mirror the
// array on the GPU compare Version against what they last uploaded.
func (a *BufferAttribute) MarkNeedsUpdate() {
	a.version++
}

func (a *BufferAttribute) Version() int {
	return a.version
}

func (a *BufferAttribute) Clone() *BufferAttribute {
	array := make([]float32, len(a.Array))
	copy(array, a.Array)
	return &BufferAttribute{Array: array, ItemSize: a.ItemSize}
}
