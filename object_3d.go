package ecg3d

import "github.com/go-gl/mathgl/mgl64"

// Object3D is a node in the scene graph. It carries a local transform
// (position, XYZ Euler rotation in radians, scale), the resolved world
// transform, and optionally something to draw or a light.
type Object3D struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3

	// Matrix is the local transform. It is rebuilt from Position, Rotation
	// and Scale on every world update unless MatrixAutoUpdate is false.
	Matrix           mgl64.Mat4
	MatrixWorld      mgl64.Mat4
	MatrixAutoUpdate bool
	Visible          bool

	Renderable Renderable
	Light      Light

	parent   *Object3D
	children []*Object3D
	disposed bool

	// cameras look down -Z, everything else points +Z at a LookAt target
	lookDownNegZ bool
}

func NewObject3D() *Object3D {
	return &Object3D{
		Scale:            mgl64.Vec3{1, 1, 1},
		Matrix:           mgl64.Ident4(),
		MatrixWorld:      mgl64.Ident4(),
		MatrixAutoUpdate: true,
		Visible:          true,
	}
}

// Add attaches children to o, detaching them from any previous parent.
func (o *Object3D) Add(children ...*Object3D) {
	for _, child := range children {
		if child == nil || child == o {
			continue
		}
		child.RemoveFromParent()
		child.parent = o
		o.children = append(o.children, child)
	}
}

// Remove detaches child from o. It reports whether child was found.
func (o *Object3D) Remove(child *Object3D) bool {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (o *Object3D) RemoveFromParent() {
	if o.parent != nil {
		o.parent.Remove(o)
	}
}

func (o *Object3D) Parent() *Object3D {
	return o.parent
}

// Children returns the child list. Callers must not modify it.
func (o *Object3D) Children() []*Object3D {
	return o.children
}

// Traverse calls fn for o and every descendant, parents first.
func (o *Object3D) Traverse(fn func(*Object3D)) {
	fn(o)
	for _, c := range o.children {
		c.Traverse(fn)
	}
}

// TraverseVisible is Traverse restricted to visible subtrees.
func (o *Object3D) TraverseVisible(fn func(*Object3D)) {
	if !o.Visible {
		return
	}
	fn(o)
	for _, c := range o.children {
		c.TraverseVisible(fn)
	}
}

func (o *Object3D) SetPosition(x, y, z float64) {
	o.Position = mgl64.Vec3{x, y, z}
}

func (o *Object3D) SetRotation(x, y, z float64) {
	o.Rotation = mgl64.Vec3{x, y, z}
}

func (o *Object3D) SetScale(x, y, z float64) {
	o.Scale = mgl64.Vec3{x, y, z}
}

// TranslateOnAxis moves o by distance along axis expressed in o's local
// (rotated) frame. axis must be unit length.
func (o *Object3D) TranslateOnAxis(axis mgl64.Vec3, distance float64) {
	dir := EulerMatrix(o.Rotation).Mat3().Mul3x1(axis)
	o.Position = o.Position.Add(dir.Mul(distance))
}

func (o *Object3D) TranslateX(distance float64) { o.TranslateOnAxis(mgl64.Vec3{1, 0, 0}, distance) }
func (o *Object3D) TranslateY(distance float64) { o.TranslateOnAxis(mgl64.Vec3{0, 1, 0}, distance) }
func (o *Object3D) TranslateZ(distance float64) { o.TranslateOnAxis(mgl64.Vec3{0, 0, 1}, distance) }

// UpdateMatrix rebuilds the local matrix from Position, Rotation and Scale.
func (o *Object3D) UpdateMatrix() {
	o.Matrix = ComposeMatrix(o.Position, o.Rotation, o.Scale)
}

// UpdateMatrixWorld recomputes the world matrix of o and all descendants,
// assuming o's parent world matrix is current.
func (o *Object3D) UpdateMatrixWorld() {
	o.UpdateWorldMatrix(false, true)
}

// UpdateWorldMatrix recomputes o's world matrix. With updateParents the
// whole ancestor chain is resolved first, so the result does not depend on
// when the parents were last updated.
func (o *Object3D) UpdateWorldMatrix(updateParents, updateChildren bool) {
	if updateParents && o.parent != nil {
		o.parent.UpdateWorldMatrix(true, false)
	}
	if o.MatrixAutoUpdate {
		o.UpdateMatrix()
	}
	if o.parent == nil {
		o.MatrixWorld = o.Matrix
	} else {
		o.MatrixWorld = o.parent.MatrixWorld.Mul4(o.Matrix)
	}
	if updateChildren {
		for _, c := range o.children {
			c.UpdateWorldMatrix(false, true)
		}
	}
}

func (o *Object3D) WorldPosition() mgl64.Vec3 {
	o.UpdateWorldMatrix(true, false)
	return o.MatrixWorld.Col(3).Vec3()
}

// LookAt rotates o so that it faces target, given in world space.
func (o *Object3D) LookAt(target mgl64.Vec3) {
	eye := o.WorldPosition()
	up := mgl64.Vec3{0, 1, 0}

	var view mgl64.Mat4
	if o.lookDownNegZ {
		view = mgl64.LookAtV(eye, target, up)
	} else {
		view = mgl64.LookAtV(target, eye, up)
	}
	// view holds the inverse rotation; the transpose undoes it
	world := view.Mat3().Transpose()

	if o.parent != nil {
		pr := rotationOnly(o.parent.MatrixWorld)
		world = pr.Transpose().Mul3(world)
	}
	o.Rotation = EulerFromMatrix(world.Mat4())
}

// Dispose detaches o from the graph and marks it and all of its descendants
// unusable. Helpers that still reference any of them report ErrStaleObject.
func (o *Object3D) Dispose() {
	o.RemoveFromParent()
	o.Traverse(func(d *Object3D) {
		d.disposed = true
	})
}

func (o *Object3D) Disposed() bool {
	return o.disposed
}

// rotationOnly strips scale from the upper 3x3 of m.
func rotationOnly(m mgl64.Mat4) mgl64.Mat3 {
	r := m.Mat3()
	for c := 0; c < 3; c++ {
		col := mgl64.Vec3{r[c*3], r[c*3+1], r[c*3+2]}
		l := col.Len()
		if l == 0 {
			continue
		}
		r[c*3], r[c*3+1], r[c*3+2] = col[0]/l, col[1]/l, col[2]/l
	}
	return r
}
