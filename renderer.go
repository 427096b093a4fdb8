package ecg3d

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

type ItemKind int

const (
	ItemPolygon ItemKind = iota
	ItemLine
)

// DrawItem is one filled convex polygon or one line segment in screen space.
type DrawItem struct {
	Kind   ItemKind
	Points []Point
	Color  color.RGBA
	Width  float32
	// Depth is the view-space distance along the camera axis. Items are
	// painted from the largest depth to the smallest.
	Depth float64
}

// DrawList is a frame's worth of screen-space items, back to front.
type DrawList struct {
	Background color.RGBA
	Items      []DrawItem
	AntiAlias  bool
}

func (dl *DrawList) Count(kind ItemKind) int {
	n := 0
	for _, it := range dl.Items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// Renderer turns a scene into a DrawList and paints it onto an ebiten image.
// Hidden surfaces are resolved with the painter's algorithm.
type Renderer struct {
	width     int
	height    int
	AntiAlias bool
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height, AntiAlias: true}
}

func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws scene as seen by cam onto screen.
func (r *Renderer) Render(screen *ebiten.Image, scene *Scene, cam Camera) {
	r.Build(scene, cam).Flush(screen)
}

type directional struct {
	dir   mgl64.Vec3
	color mgl64.Vec3
}

type lighting struct {
	ambient     mgl64.Vec3
	directional []directional
	eye         mgl64.Vec3
}

type frame struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	near   float64
	w, h   float32
	fog    *Fog
	lights lighting
}

// Build resolves world matrices and produces the sorted draw list.
func (r *Renderer) Build(scene *Scene, cam Camera) *DrawList {
	scene.UpdateMatrixWorld()

	f := &frame{
		view: cam.ViewMatrix(),
		proj: cam.ProjectionMatrix(),
		near: cam.NearPlane(),
		w:    float32(r.width),
		h:    float32(r.height),
		fog:  scene.Fog,
	}
	f.lights.eye = cam.Node().WorldPosition()
	for _, l := range scene.Lights() {
		c := colorVec(l.LightColor()).Mul(l.LightIntensity())
		switch light := l.(type) {
		case *AmbientLight:
			f.lights.ambient = f.lights.ambient.Add(c)
		case *DirectionalLight:
			f.lights.directional = append(f.lights.directional, directional{dir: light.Direction(), color: c})
		}
	}

	dl := &DrawList{Background: scene.Background, AntiAlias: r.AntiAlias}
	scene.TraverseVisible(func(o *Object3D) {
		if o.Renderable == nil || o.Renderable.Geometry() == nil {
			return
		}
		switch o.Renderable.Mode() {
		case DrawTriangles:
			dl.Items = f.appendMesh(dl.Items, o)
		case DrawLines, DrawLineStrip, DrawLineLoop:
			dl.Items = f.appendLines(dl.Items, o)
		}
	})

	sort.SliceStable(dl.Items, func(i, j int) bool {
		return dl.Items[i].Depth > dl.Items[j].Depth
	})
	return dl
}

func (f *frame) appendMesh(items []DrawItem, o *Object3D) []DrawItem {
	geom := o.Renderable.Geometry()
	pos, ok := geom.Attribute(AttrPosition)
	if !ok {
		return items
	}
	normals, hasNormals := geom.Attribute(AttrNormal)
	mat, _ := o.Renderable.Material().(*MeshMaterial)
	if mat == nil {
		mat = NewMeshBasicMaterial(o.Renderable.Material().BaseColor())
	}

	world := o.MatrixWorld
	mv := f.view.Mul4(world)
	normalMatrix := NormalMatrix(world)

	var tri [3]int
	emit := func() {
		var wv, vv [3]mgl64.Vec3
		for k, i := range tri {
			p := vertexAt(pos, i)
			wv[k] = mgl64.TransformCoordinate(p, world)
			vv[k] = mgl64.TransformCoordinate(p, mv)
		}

		facing := vv[1].Sub(vv[0]).Cross(vv[2].Sub(vv[0])).Dot(vv[0]) < 0
		switch mat.Side {
		case FrontSide:
			if !facing {
				return
			}
		case BackSide:
			if facing {
				return
			}
		}

		var n mgl64.Vec3
		if hasNormals && !mat.FlatShading {
			var v Vector3
			for _, i := range tri {
				v.Set(normals.GetXYZ(i)).ApplyMatrix3(normalMatrix).Normalize()
				n = n.Add(v.Vec3())
			}
		} else {
			n = wv[1].Sub(wv[0]).Cross(wv[2].Sub(wv[0]))
		}
		if !facing {
			n = n.Mul(-1)
		}
		if n.Len() > 0 {
			n = n.Normalize()
		}

		centre := wv[0].Add(wv[1]).Add(wv[2]).Mul(1.0 / 3)
		depth := -(vv[0][2] + vv[1][2] + vv[2][2]) / 3
		col := f.lights.shade(mat, n, centre)
		if f.fog != nil {
			col = f.fog.Apply(col, depth)
		}

		clipped := clipPolygonAgainstNearPlane(vv[:], f.near)
		if len(clipped) < 3 {
			return
		}
		screen := make([]Point, 0, len(clipped))
		for _, p := range clipped {
			sp, ok := f.project(p)
			if !ok {
				return
			}
			screen = append(screen, sp)
		}
		screen = clipPolygon(screen, f.w, f.h)
		if len(screen) < 3 {
			return
		}
		items = append(items, DrawItem{Kind: ItemPolygon, Points: screen, Color: col, Depth: depth})
	}

	if index := geom.Index(); index != nil {
		for i := 0; i+2 < len(index); i += 3 {
			tri = [3]int{int(index[i]), int(index[i+1]), int(index[i+2])}
			emit()
		}
	} else {
		for i := 0; i+2 < pos.Count(); i += 3 {
			tri = [3]int{i, i + 1, i + 2}
			emit()
		}
	}
	return items
}

func (f *frame) appendLines(items []DrawItem, o *Object3D) []DrawItem {
	geom := o.Renderable.Geometry()
	pos, ok := geom.Attribute(AttrPosition)
	if !ok {
		return items
	}
	base := o.Renderable.Material().BaseColor()
	width := float32(1)
	var colors *BufferAttribute
	if lm, ok := o.Renderable.Material().(*LineBasicMaterial); ok {
		if lm.LineWidth > 0 {
			width = lm.LineWidth
		}
		if lm.VertexColors {
			colors, _ = geom.Attribute(AttrColor)
		}
	}

	mv := f.view.Mul4(o.MatrixWorld)
	segment := func(i, j int) {
		a := mgl64.TransformCoordinate(vertexAt(pos, i), mv)
		b := mgl64.TransformCoordinate(vertexAt(pos, j), mv)
		a, b, ok := clipSegmentAgainstNearPlane(a, b, f.near)
		if !ok {
			return
		}
		sa, oka := f.project(a)
		sb, okb := f.project(b)
		if !oka || !okb || !segmentVisible(sa, sb, f.w, f.h) {
			return
		}

		col := base
		if colors != nil {
			col = colorVecToRGBA(vertexAt(colors, i).Add(vertexAt(colors, j)).Mul(0.5), base.A)
		}
		depth := -(a[2] + b[2]) / 2
		if f.fog != nil {
			col = f.fog.Apply(col, depth)
		}
		items = append(items, DrawItem{Kind: ItemLine, Points: []Point{sa, sb}, Color: col, Width: width, Depth: depth})
	}

	n := pos.Count()
	switch o.Renderable.Mode() {
	case DrawLines:
		for i := 0; i+1 < n; i += 2 {
			segment(i, i+1)
		}
	case DrawLineStrip:
		for i := 0; i+1 < n; i++ {
			segment(i, i+1)
		}
	case DrawLineLoop:
		for i := 0; i+1 < n; i++ {
			segment(i, i+1)
		}
		if n > 2 {
			segment(n-1, 0)
		}
	}
	return items
}

// project maps a view-space point to screen pixels, y down.
func (f *frame) project(p mgl64.Vec3) (Point, bool) {
	clip := f.proj.Mul4x1(p.Vec4(1))
	if clip[3] == 0 {
		return Point{}, false
	}
	x := clip[0] / clip[3]
	y := clip[1] / clip[3]
	return Point{
		X: float32((x + 1) / 2 * float64(f.w)),
		Y: float32((1 - y) / 2 * float64(f.h)),
	}, true
}

// shade lights a surface with world-space unit normal n at point p.
func (l *lighting) shade(m *MeshMaterial, n, p mgl64.Vec3) color.RGBA {
	base := colorVec(m.Color)
	if m.Shading == ShadingUnlit {
		return m.Color
	}

	light := l.ambient
	var specular mgl64.Vec3
	view := l.eye.Sub(p)
	if view.Len() > 0 {
		view = view.Normalize()
	}
	for _, d := range l.directional {
		diffuse := n.Dot(d.dir)
		if diffuse <= 0 {
			continue
		}
		light = light.Add(d.color.Mul(diffuse))
		if m.Shading == ShadingPhong {
			half := d.dir.Add(view)
			if half.Len() == 0 {
				continue
			}
			s := math.Pow(math.Max(n.Dot(half.Normalize()), 0), m.Shininess)
			specular = specular.Add(d.color.Mul(s))
		}
	}

	out := mgl64.Vec3{
		base[0]*light[0] + specular[0],
		base[1]*light[1] + specular[1],
		base[2]*light[2] + specular[2],
	}
	return colorVecToRGBA(out, m.Color.A)
}

func colorVec(c color.RGBA) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func colorVecToRGBA(v mgl64.Vec3, alpha uint8) color.RGBA {
	return color.RGBA{
		R: uint8(clamp(int(v[0]*255+0.5), 0, 255)),
		G: uint8(clamp(int(v[1]*255+0.5), 0, 255)),
		B: uint8(clamp(int(v[2]*255+0.5), 0, 255)),
		A: alpha,
	}
}
