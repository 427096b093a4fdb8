package ecg3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
)

// Point is a position in screen pixels.
type Point struct {
	X float32
	Y float32
}

// clipPolygonAgainstNearPlane clips a view-space polygon to the half space in
// front of the camera, z <= -near. The camera looks down -Z.
func clipPolygonAgainstNearPlane(points []mgl64.Vec3, near float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(points)+1)
	if len(points) == 0 {
		return out
	}
	inside := func(p mgl64.Vec3) bool { return p[2] <= -near }

	prev := points[len(points)-1]
	for _, cur := range points {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, intersectNearPlane(prev, cur, near), cur)
		case inside(prev):
			out = append(out, intersectNearPlane(prev, cur, near))
		}
		prev = cur
	}
	return out
}

// clipSegmentAgainstNearPlane is the two-point case of
// clipPolygonAgainstNearPlane. ok is false when nothing is in front.
func clipSegmentAgainstNearPlane(a, b mgl64.Vec3, near float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	ina, inb := a[2] <= -near, b[2] <= -near
	switch {
	case ina && inb:
		return a, b, true
	case ina:
		return a, intersectNearPlane(a, b, near), true
	case inb:
		return intersectNearPlane(a, b, near), b, true
	}
	return a, b, false
}

// intersectNearPlane returns the point where segment p1-p2 crosses z = -near.
// A segment parallel to the plane returns p1.
func intersectNearPlane(p1, p2 mgl64.Vec3, near float64) mgl64.Vec3 {
	dz := p2[2] - p1[2]
	if dz == 0 {
		return p1
	}
	t := (-near - p1[2]) / dz
	return p1.Add(p2.Sub(p1).Mul(t))
}

// clipPolygon clips a screen-space polygon to the rectangle [0,w] x [0,h].
func clipPolygon(points []Point, w, h float32) []Point {
	if len(points) == 0 {
		return []Point{}
	}

	edges := []struct {
		inside    func(Point) bool
		intersect func(a, b Point) Point
	}{
		{
			func(p Point) bool { return p.X >= 0 },
			func(a, b Point) Point { return Point{0, a.Y + (b.Y-a.Y)*(0-a.X)/(b.X-a.X)} },
		},
		{
			func(p Point) bool { return p.X <= w },
			func(a, b Point) Point { return Point{w, a.Y + (b.Y-a.Y)*(w-a.X)/(b.X-a.X)} },
		},
		{
			func(p Point) bool { return p.Y >= 0 },
			func(a, b Point) Point { return Point{a.X + (b.X-a.X)*(0-a.Y)/(b.Y-a.Y), 0} },
		},
		{
			func(p Point) bool { return p.Y <= h },
			func(a, b Point) Point { return Point{a.X + (b.X-a.X)*(h-a.Y)/(b.Y-a.Y), h} },
		},
	}

	out := points
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.intersect(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.intersect(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

// segmentVisible reports whether a screen segment can touch the rectangle
// [0,w] x [0,h] and has non-zero length.
func segmentVisible(a, b Point, w, h float32) bool {
	if math32.Hypot(b.X-a.X, b.Y-a.Y) == 0 {
		return false
	}
	if math32.Max(a.X, b.X) < 0 || math32.Min(a.X, b.X) > w {
		return false
	}
	if math32.Max(a.Y, b.Y) < 0 || math32.Min(a.Y, b.Y) > h {
		return false
	}
	return true
}
