package ecg3d

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

var ErrBadPLY = errors.New("malformed PLY data")

type plyElement struct {
	name       string
	count      int
	properties []string
}

func (e *plyElement) property(name string) int {
	for i, p := range e.properties {
		if p == name {
			return i
		}
	}
	return -1
}

// LoadPLYFile reads an ASCII PLY mesh from fileName.
func LoadPLYFile(fileName string) (*BufferGeometry, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	g, err := LoadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return g, nil
}

// LoadPLY reads an ASCII PLY mesh. Vertices need x, y and z; nx, ny, nz and
// red, green, blue (0-255) are used when present. Polygons are split into
// triangle fans. Without per-vertex normals, smooth normals are computed.
func LoadPLY(reader io.Reader) (*BufferGeometry, error) {
	scanner := bufio.NewScanner(reader)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("missing ply magic: %w", ErrBadPLY)
	}

	var elements []*plyElement
	var current *plyElement
	headerDone := false
	for !headerDone && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("only ascii PLY is supported, got %q: %w", scanner.Text(), ErrBadPLY)
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("bad element line %q: %w", scanner.Text(), ErrBadPLY)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("bad element count %q: %w", parts[2], ErrBadPLY)
			}
			current = &plyElement{name: parts[1], count: count}
			elements = append(elements, current)
		case "property":
			if current == nil || len(parts) < 3 {
				return nil, fmt.Errorf("property outside element: %w", ErrBadPLY)
			}
			current.properties = append(current.properties, parts[len(parts)-1])
		case "end_header":
			headerDone = true
		}
	}
	if !headerDone {
		return nil, fmt.Errorf("unexpected end of file in header: %w", ErrBadPLY)
	}

	positions := []float32{}
	var normals, colors []float32
	var index []uint32
	vertexCount := 0

	for _, el := range elements {
		switch el.name {
		case "vertex":
			x, y, z := el.property("x"), el.property("y"), el.property("z")
			if x < 0 || y < 0 || z < 0 {
				return nil, fmt.Errorf("vertex element lacks x, y or z: %w", ErrBadPLY)
			}
			nx, ny, nz := el.property("nx"), el.property("ny"), el.property("nz")
			hasNormals := nx >= 0 && ny >= 0 && nz >= 0
			r, g, b := el.property("red"), el.property("green"), el.property("blue")
			hasColors := r >= 0 && g >= 0 && b >= 0

			vertexCount = el.count
			for i := 0; i < el.count; i++ {
				values, err := scanFloats(scanner, len(el.properties))
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				positions = append(positions, values[x], values[y], values[z])
				if hasNormals {
					normals = append(normals, values[nx], values[ny], values[nz])
				}
				if hasColors {
					colors = append(colors, values[r]/255, values[g]/255, values[b]/255)
				}
			}

		case "face":
			for i := 0; i < el.count; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected end of file while reading faces: %w", ErrBadPLY)
				}
				parts := strings.Fields(scanner.Text())
				if len(parts) == 0 {
					return nil, fmt.Errorf("face %d: empty line: %w", i, ErrBadPLY)
				}
				n, err := strconv.Atoi(parts[0])
				if err != nil || n < 3 || len(parts) < n+1 {
					return nil, fmt.Errorf("invalid face data on line %d: %w", i, ErrBadPLY)
				}
				face := make([]uint32, n)
				for j := range face {
					idx, err := strconv.Atoi(parts[j+1])
					if err != nil || idx < 0 || idx >= vertexCount {
						return nil, fmt.Errorf("face %d: bad vertex index %q: %w", i, parts[j+1], ErrBadPLY)
					}
					face[j] = uint32(idx)
				}
				for j := 2; j < n; j++ {
					index = append(index, face[0], face[j-1], face[j])
				}
			}

		default:
			// skip elements we do not draw, such as edges
			for i := 0; i < el.count; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected end of file in %s: %w", el.name, ErrBadPLY)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	geom := NewBufferGeometry()
	geom.SetAttribute(AttrPosition, NewBufferAttribute(positions, 3))
	if colors != nil {
		geom.SetAttribute(AttrColor, NewBufferAttribute(colors, 3))
	}
	if index != nil {
		geom.SetIndex(index)
	}
	if normals != nil {
		geom.SetAttribute(AttrNormal, NewBufferAttribute(normals, 3))
	} else {
		geom.ComputeVertexNormals()
	}

	log.Printf("PLY: %d vertices, %d triangles", vertexCount, len(index)/3)
	return geom, nil
}

func scanFloats(scanner *bufio.Scanner, want int) ([]float32, error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected end of file while reading vertices: %w", ErrBadPLY)
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < want {
		return nil, fmt.Errorf("got %d values, want %d: %w", len(parts), want, ErrBadPLY)
	}
	values := make([]float32, want)
	for i := range values {
		v, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", parts[i], ErrBadPLY)
		}
		values[i] = float32(v)
	}
	return values, nil
}
