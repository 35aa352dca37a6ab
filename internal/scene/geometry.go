package scene

import "math"

// Geometry is an indexed triangle mesh with interleaved position, normal and
// uv attributes.
type Geometry struct {
	Vertices []float32
	Indices  []uint32
}

// FloatsPerVertex is the interleaved stride: position(3) normal(3) uv(2).
const FloatsPerVertex = 8

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / FloatsPerVertex
}

// Sphere builds a UV sphere centred on the origin. Rings run from the north
// pole (v = 0, the top image row) to the south pole; the seam column is
// duplicated so u spans [0, 1].
func Sphere(radius float64, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	g := &Geometry{
		Vertices: make([]float32, 0, (widthSegments+1)*(heightSegments+1)*FloatsPerVertex),
		Indices:  make([]uint32, 0, widthSegments*heightSegments*6),
	}

	for ring := 0; ring <= heightSegments; ring++ {
		v := float64(ring) / float64(heightSegments)
		theta := v * math.Pi
		sinTheta, cosTheta := math.Sincos(theta)

		for seg := 0; seg <= widthSegments; seg++ {
			u := float64(seg) / float64(widthSegments)
			phi := u * 2 * math.Pi
			sinPhi, cosPhi := math.Sincos(phi)

			nx := -cosPhi * sinTheta
			ny := cosTheta
			nz := sinPhi * sinTheta

			g.Vertices = append(g.Vertices,
				float32(nx*radius), float32(ny*radius), float32(nz*radius),
				float32(nx), float32(ny), float32(nz),
				float32(u), float32(v),
			)
		}
	}

	stride := uint32(widthSegments + 1)
	for ring := 0; ring < heightSegments; ring++ {
		for seg := 0; seg < widthSegments; seg++ {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			// Pole rows collapse to a point; skip their degenerate halves.
			if ring != 0 {
				g.Indices = append(g.Indices, a, b, a+1)
			}
			if ring != heightSegments-1 {
				g.Indices = append(g.Indices, a+1, b, b+1)
			}
		}
	}

	return g
}
