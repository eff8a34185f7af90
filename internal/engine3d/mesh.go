package engine3d

import (
	"fmt"

	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/render"
	"github.com/Faultbox/beamscope/pkg/geom"
)

// BuildSurfaceMesh converts a 3D radiation pattern into a triangle mesh.
// Each grid sample becomes a vertex at spherical radius equal to its
// magnitude, colored on the blue-to-red magnitude colormap. Normals are
// accumulated from adjacent faces for smooth shading.
func BuildSurfaceMesh(p *pattern.Pattern3D) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("building surface mesh: %w", err)
	}

	phiSteps := p.PhiSteps()
	thetaSteps := p.ThetaSteps()
	if phiSteps < 2 || thetaSteps < 2 {
		return nil, fmt.Errorf("building surface mesh: grid %dx%d too small", phiSteps, thetaSteps)
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, phiSteps*thetaSteps),
		Indices:  make([]uint32, 0, 6*(phiSteps-1)*(thetaSteps-1)),
	}

	for i := 0; i < phiSteps; i++ {
		for j := 0; j < thetaSteps; j++ {
			r := p.Magnitude[i][j]
			pos := geom.SphericalToCartesian(p.Theta[i][j], p.Phi[i][j], r)
			col := render.HSL(0.6*(1-r), 1.0, 0.5)
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Color: [3]float32{
					float32(col.R) / 255,
					float32(col.G) / 255,
					float32(col.B) / 255,
				},
			})
		}
	}

	// Two triangles per grid cell. Vertex a is the cell's corner at
	// (phi i, theta j); a+thetaSteps is the same theta on the next phi row.
	for i := 0; i < phiSteps-1; i++ {
		for j := 0; j < thetaSteps-1; j++ {
			a := uint32(i*thetaSteps + j)
			mesh.Indices = append(mesh.Indices,
				a, a+uint32(thetaSteps), a+1,
				a+uint32(thetaSteps), a+uint32(thetaSteps)+1, a+1,
			)
		}
	}

	computeNormals(mesh)
	mesh.Edges = collectEdges(mesh.Indices)
	return mesh, nil
}

// computeNormals accumulates face normals onto each vertex and
// normalizes the result.
func computeNormals(m *Mesh) {
	for t := 0; t < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		p0 := m.Vertices[i0].Position
		p1 := m.Vertices[i1].Position
		p2 := m.Vertices[i2].Position

		n := p1.Sub(p0).Cross(p2.Sub(p0))
		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(n)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(n)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(n)
	}
	for i := range m.Vertices {
		n := m.Vertices[i].Normal.Normalize()
		if n.Length() == 0 {
			n = geom.Vec3{Z: 1}
		}
		m.Vertices[i].Normal = n
	}
}

// collectEdges returns the unique undirected edges of a triangle list.
func collectEdges(indices []uint32) [][2]uint32 {
	seen := make(map[[2]uint32]struct{}, len(indices))
	edges := make([][2]uint32, 0, len(indices))

	add := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		key := [2]uint32{a, b}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		edges = append(edges, key)
	}

	for t := 0; t < len(indices); t += 3 {
		add(indices[t], indices[t+1])
		add(indices[t+1], indices[t+2])
		add(indices[t+2], indices[t])
	}
	return edges
}
