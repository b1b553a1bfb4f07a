// Package geometry builds triangle meshes for the primitive shapes used in the scene.
package geometry

import (
	"math"
)

// Vertex is an interleaved mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds vertex and index data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Sphere describes a UV sphere centered at the origin.
type Sphere struct {
	Radius         float32
	WidthSegments  int // Segments around the equator
	HeightSegments int // Segments from pole to pole
}

// Minimum segment counts for a closed sphere.
const (
	MinWidthSegments  = 3
	MinHeightSegments = 2
)

// NewSphere returns a sphere description with segment counts clamped to the minimum.
func NewSphere(radius float32, widthSegments, heightSegments int) Sphere {
	if widthSegments < MinWidthSegments {
		widthSegments = MinWidthSegments
	}
	if heightSegments < MinHeightSegments {
		heightSegments = MinHeightSegments
	}
	return Sphere{
		Radius:         radius,
		WidthSegments:  widthSegments,
		HeightSegments: heightSegments,
	}
}

// Build tessellates the sphere.
// Rings run from the +Y pole (v=0) to the -Y pole (v=1); each ring repeats its
// first vertex at u=1 so the texture seam has its own UVs.
func (s Sphere) Build() *Mesh {
	w, h := s.WidthSegments, s.HeightSegments
	mesh := &Mesh{
		Vertices: make([]Vertex, 0, (w+1)*(h+1)),
		Indices:  make([]uint32, 0, w*(h-1)*6),
	}

	for ring := 0; ring <= h; ring++ {
		v := float32(ring) / float32(h)
		theta := float64(v) * math.Pi
		sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

		for seg := 0; seg <= w; seg++ {
			u := float32(seg) / float32(w)
			phi := float64(u) * 2 * math.Pi
			sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

			nx := float32(-cosPhi * sinTheta)
			ny := float32(cosTheta)
			nz := float32(sinPhi * sinTheta)

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: [3]float32{nx * s.Radius, ny * s.Radius, nz * s.Radius},
				Normal:   [3]float32{nx, ny, nz},
				TexCoord: [2]float32{u, v},
			})
		}
	}

	stride := uint32(w + 1)
	for ring := 0; ring < h; ring++ {
		for seg := 0; seg < w; seg++ {
			a := uint32(ring)*stride + uint32(seg) + 1
			b := uint32(ring)*stride + uint32(seg)
			c := uint32(ring+1)*stride + uint32(seg)
			d := uint32(ring+1)*stride + uint32(seg) + 1

			// Pole rings collapse to a point, so each contributes one triangle per segment
			if ring != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if ring != h-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}

	return mesh
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
func (m *Mesh) Bounds() (min, max [3]float32) {
	if len(m.Vertices) == 0 {
		return min, max
	}
	min = m.Vertices[0].Position
	max = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}
