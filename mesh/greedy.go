// Package mesh turns voxel volumes into surface meshes for downstream model
// tooling. Coplanar faces with the same color are merged greedily per slab.
package mesh

import (
	"fmt"

	"github.com/voxelforge/menger/voxel"
)

// Vertex is a mesh corner with a normalized RGBA color.
type Vertex struct {
	Position [3]float32
	Color    [4]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

type dirSpec struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

var directions = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
}

// colorKey collapses a voxel into a mergeable uint32: 0 for empty, the
// palette index for mono volumes, a tagged packed RGB for color volumes.
func colorKey(v *voxel.Volume, x, y, z int) uint32 {
	if x < 0 || x >= v.Nx || y < 0 || y >= v.Ny || z < 0 || z >= v.Nz {
		return 0
	}
	if v.Channels == 1 {
		return uint32(v.At(x, y, z, 0))
	}
	r, g, b := v.At(x, y, z, 0), v.At(x, y, z, 1), v.At(x, y, z, 2)
	if r == 0 && g == 0 && b == 0 {
		return 0
	}
	return 1<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func keyColor(v *voxel.Volume, key uint32) ([4]float32, error) {
	if v.Channels == 3 {
		return [4]float32{
			float32(key>>16&0xFF) / 255,
			float32(key>>8&0xFF) / 255,
			float32(key&0xFF) / 255,
			1,
		}, nil
	}
	return voxel.ParseHexColor(voxel.DefaultPalette[int(key)%len(voxel.DefaultPalette)])
}

func addQuad(m *Mesh, dir dirSpec, start [3]int, w, h int, color [4]float32, perp int) {
	base := [3]float32{}
	base[perp] = float32(start[0])
	if dir.normal[perp] > 0 {
		base[perp] += 1
	}
	base[dir.u] = float32(start[1])
	base[dir.v] = float32(start[2])

	verts := [4]Vertex{
		{Position: base, Color: color},
		{Position: [3]float32{base[0] + float32(dir.du[0]*h), base[1] + float32(dir.du[1]*h), base[2] + float32(dir.du[2]*h)}, Color: color},
		{Position: [3]float32{base[0] + float32(dir.du[0]*h) + float32(dir.dv[0]*w), base[1] + float32(dir.du[1]*h) + float32(dir.dv[1]*w), base[2] + float32(dir.du[2]*h) + float32(dir.dv[2]*w)}, Color: color},
		{Position: [3]float32{base[0] + float32(dir.dv[0]*w), base[1] + float32(dir.dv[1]*w), base[2] + float32(dir.dv[2]*w)}, Color: color},
	}

	swap := (dir.normal[perp] < 0) != (perp == 1)
	if swap {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, verts[:]...)
	m.Indices = append(m.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}

// Generate builds a greedy surface mesh of the volume: for each of the six
// face directions, per-slab masks of exposed faces are merged into maximal
// same-color rectangles.
func Generate(v *voxel.Volume) (*Mesh, error) {
	m := &Mesh{}
	dims := [3]int{v.Nx, v.Ny, v.Nz}
	colors := map[uint32][4]float32{}

	for _, dir := range directions {
		perp := 3 - dir.u - dir.v

		for p := 0; p < dims[perp]; p++ {
			mask := make([][]uint32, dims[dir.u])
			visited := make([][]bool, dims[dir.u])
			for i := range mask {
				mask[i] = make([]uint32, dims[dir.v])
				visited[i] = make([]bool, dims[dir.v])
			}

			for u := 0; u < dims[dir.u]; u++ {
				for w := 0; w < dims[dir.v]; w++ {
					pos := [3]int{}
					pos[dir.u] = u
					pos[dir.v] = w
					pos[perp] = p

					key := colorKey(v, pos[0], pos[1], pos[2])
					if key == 0 {
						continue
					}

					adj := pos
					if dir.normal[perp] < 0 {
						adj[perp] = p - 1
					} else {
						adj[perp] = p + 1
					}

					if colorKey(v, adj[0], adj[1], adj[2]) == 0 {
						mask[u][w] = key
					}
				}
			}

			for u := 0; u < dims[dir.u]; u++ {
				for w := 0; w < dims[dir.v]; {
					if mask[u][w] == 0 || visited[u][w] {
						w++
						continue
					}
					key := mask[u][w]
					width := 1
					for k := w + 1; k < dims[dir.v] && mask[u][k] == key && !visited[u][k]; k++ {
						width++
					}
					height := 1
					stop := false
					for h := u + 1; h < dims[dir.u] && !stop; h++ {
						for k := w; k < w+width; k++ {
							if mask[h][k] != key || visited[h][k] {
								stop = true
								break
							}
						}
						if !stop {
							height++
						}
					}
					for hu := u; hu < u+height; hu++ {
						for hv := w; hv < w+width; hv++ {
							visited[hu][hv] = true
						}
					}
					color, ok := colors[key]
					if !ok {
						var err error
						color, err = keyColor(v, key)
						if err != nil {
							return nil, fmt.Errorf("resolve face color: %w", err)
						}
						colors[key] = color
					}
					addQuad(m, dir, [3]int{p, u, w}, width, height, color, perp)
					w += width
				}
			}
		}
	}
	return m, nil
}
