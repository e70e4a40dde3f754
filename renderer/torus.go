package renderer

import (
	"math"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// torusSides is the tube cross-section resolution.
const torusSides = 16

// TorusGeometry is CPU-side vertex data for a torus lying in the XY plane
// with its axis along Z.
type TorusGeometry struct {
	Vertices  []float32 // xyz
	Normals   []float32 // xyz
	Texcoords []float32 // uv
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (g TorusGeometry) VertexCount() int { return len(g.Vertices) / 3 }

// GenTorus builds a torus of major radius radius and tube radius tube with
// segments steps around the ring and sides steps around the tube. The seam
// vertices are duplicated so texture coordinates wrap cleanly.
func GenTorus(radius, tube float32, segments, sides int) TorusGeometry {
	segments = max(segments, 3)
	sides = max(sides, 3)

	n := (segments + 1) * (sides + 1)
	g := TorusGeometry{
		Vertices:  make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		Texcoords: make([]float32, 0, n*2),
		Indices:   make([]uint16, 0, segments*sides*6),
	}

	for i := 0; i <= segments; i++ {
		u := float64(i) / float64(segments)
		theta := u * 2 * math.Pi
		ct, st := float32(math.Cos(theta)), float32(math.Sin(theta))
		for j := 0; j <= sides; j++ {
			v := float64(j) / float64(sides)
			phi := v * 2 * math.Pi
			cp, sp := float32(math.Cos(phi)), float32(math.Sin(phi))

			// Normal points away from the tube centre line
			nx, ny, nz := cp*ct, cp*st, sp
			g.Vertices = append(g.Vertices, ct*radius+tube*nx, st*radius+tube*ny, tube*nz)
			g.Normals = append(g.Normals, nx, ny, nz)
			g.Texcoords = append(g.Texcoords, float32(u), float32(v))
		}
	}

	stride := sides + 1
	for i := range segments {
		for j := range sides {
			a := uint16(i*stride + j)
			b := uint16((i+1)*stride + j)
			g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	return g
}

// torusMesh uploads a generated torus to the GPU. The returned mesh keeps
// only its buffer handles, so UnloadModel never frees Go memory.
func torusMesh(radius, tube float32, segments int) rl.Mesh {
	g := GenTorus(radius, tube, segments, torusSides)
	mesh := rl.Mesh{
		VertexCount:   int32(g.VertexCount()),
		TriangleCount: int32(len(g.Indices) / 3),
		Vertices:      unsafe.SliceData(g.Vertices),
		Normals:       unsafe.SliceData(g.Normals),
		Texcoords:     unsafe.SliceData(g.Texcoords),
		Indices:       unsafe.SliceData(g.Indices),
	}
	rl.UploadMesh(&mesh, false)
	mesh.Vertices, mesh.Normals, mesh.Texcoords, mesh.Indices = nil, nil, nil, nil
	return mesh
}
