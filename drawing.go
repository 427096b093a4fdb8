package ecg3d

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

func whiteSource() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// Flush paints the background and then every item in order.
func (dl *DrawList) Flush(screen *ebiten.Image) {
	screen.Fill(dl.Background)
	for _, it := range dl.Items {
		switch it.Kind {
		case ItemPolygon:
			fillConvexPolygon(screen, it.Points, it.Color, dl.AntiAlias)
		case ItemLine:
			a, b := it.Points[0], it.Points[1]
			vector.StrokeLine(screen, a.X, a.Y, b.X, b.Y, it.Width, it.Color, dl.AntiAlias)
		}
	}
}

// fillConvexPolygon draws a triangle fan.
func fillConvexPolygon(screen *ebiten.Image, points []Point, clr color.RGBA, antiAlias bool) {
	if len(points) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(points)-2)*3)
	for i := 2; i < len(points); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	vertices := make([]ebiten.Vertex, len(points))
	for i, p := range points {
		vertices[i] = ebiten.Vertex{
			DstX:   p.X,
			DstY:   p.Y,
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = antiAlias
	screen.DrawTriangles(vertices, indices, whiteSource(), op)
}
