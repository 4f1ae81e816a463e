// Package terrain builds chunk meshes from the height field and road path
// and streams them around the vehicle. Chunks are square tiles of a fixed
// vertex lattice; the manager keeps a (2*radius+1)^2 window of them resident.
package terrain

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/heightfield"
	"silly-roads/internal/road"
)

// Coord identifies a chunk by its integer grid cell.
type Coord struct {
	X, Z int
}

// MeshData is an indexed triangle mesh with exact-size buffers. Positions
// are chunk-local on X/Z (subtract the chunk's world offset) with
// world-space heights; normals, texcoords, and RGBA colors are per vertex.
// Buffers are sized once from the grid resolution and never grown.
type MeshData struct {
	Vertices  []float32
	Normals   []float32
	TexCoords []float32
	Colors    []uint8
	Indices   []uint16

	VertexCount   int
	TriangleCount int
}

// Terrain and road vertex colors. The two terrain greens alternate in a
// checkerboard by lattice parity so the ground reads as tiles even without
// a texture.
var (
	terrainColorA = [4]uint8{96, 128, 72, 255}
	terrainColorB = [4]uint8{82, 112, 62, 255}
	roadColor     = [4]uint8{58, 58, 62, 255}
)

// Builder computes chunk meshes. gridSize is the vertex lattice edge (a
// chunk spans gridSize-1 tiles of tileSize world units); roadWidth and
// fadeWidth control the road coloring bands.
type Builder struct {
	heights *heightfield.Field

	gridSize      int
	tileSize      float32
	roadHalfWidth float32
	fadeWidth     float32
}

// NewBuilder returns a mesh builder. Grid sizes below 2 cannot form a quad
// and are clamped.
func NewBuilder(heights *heightfield.Field, gridSize int, tileSize, roadWidth, fadeWidth float32) *Builder {
	if gridSize < 2 {
		gridSize = 2
	}
	if tileSize <= 0 {
		tileSize = 1
	}
	return &Builder{
		heights:       heights,
		gridSize:      gridSize,
		tileSize:      tileSize,
		roadHalfWidth: roadWidth * 0.5,
		fadeWidth:     fadeWidth,
	}
}

// ChunkWorldSize returns the world-space edge length of one chunk. Adjacent
// chunks share their boundary vertex row, so the size is gridSize-1 tiles.
func (b *Builder) ChunkWorldSize() float32 {
	return float32(b.gridSize-1) * b.tileSize
}

// queryMargin is how far outside a chunk road geometry can still influence
// vertex colors: half road width, the fade band, and one safety unit.
func (b *Builder) queryMargin() float32 {
	return b.roadHalfWidth + b.fadeWidth + 1
}

// Build computes the mesh for the chunk at c against the current dense road
// path. Vertex and triangle counts are fixed functions of the grid size:
// gridSize^2 vertices and 2*(gridSize-1)^2 triangles.
func (b *Builder) Build(c Coord, roadPath []mgl32.Vec3) *MeshData {
	g := b.gridSize
	size := b.ChunkWorldSize()
	originX := float32(c.X) * size
	originZ := float32(c.Z) * size

	vertexCount := g * g
	triangleCount := 2 * (g - 1) * (g - 1)
	m := &MeshData{
		Vertices:      make([]float32, vertexCount*3),
		Normals:       make([]float32, vertexCount*3),
		TexCoords:     make([]float32, vertexCount*2),
		Colors:        make([]uint8, vertexCount*4),
		Indices:       make([]uint16, triangleCount*3),
		VertexCount:   vertexCount,
		TriangleCount: triangleCount,
	}

	roadDistSq := b.roadDistanceSq(originX, originZ, roadPath)

	for gz := 0; gz < g; gz++ {
		for gx := 0; gx < g; gx++ {
			i := gz*g + gx
			localX := float32(gx) * b.tileSize
			localZ := float32(gz) * b.tileSize
			worldX := originX + localX
			worldZ := originZ + localZ

			m.Vertices[i*3+0] = localX
			m.Vertices[i*3+1] = b.heights.Height(worldX, worldZ)
			m.Vertices[i*3+2] = localZ

			n := b.heights.Normal(worldX, worldZ)
			m.Normals[i*3+0] = n.X()
			m.Normals[i*3+1] = n.Y()
			m.Normals[i*3+2] = n.Z()

			m.TexCoords[i*2+0] = float32(gx) / float32(g-1)
			m.TexCoords[i*2+1] = float32(gz) / float32(g-1)

			col := b.vertexColor(gx, gz, roadDistSq[i])
			copy(m.Colors[i*4:i*4+4], col[:])
		}
	}

	idx := 0
	for gz := 0; gz < g-1; gz++ {
		for gx := 0; gx < g-1; gx++ {
			topLeft := uint16(gz*g + gx)
			topRight := topLeft + 1
			bottomLeft := uint16((gz+1)*g + gx)
			bottomRight := bottomLeft + 1

			m.Indices[idx+0] = topLeft
			m.Indices[idx+1] = bottomLeft
			m.Indices[idx+2] = topRight
			m.Indices[idx+3] = topRight
			m.Indices[idx+4] = bottomLeft
			m.Indices[idx+5] = bottomRight
			idx += 6
		}
	}
	return m
}

// roadDistanceSq returns the per-vertex squared XZ distance to the nearest
// road segment, +Inf where nothing is within the query margin. Two levels of
// bounding keep this proportional to the segments actually near the chunk:
// one coarse query for the chunk rectangle, then each returned segment only
// visits the lattice cells inside its own inflated bounding box.
func (b *Builder) roadDistanceSq(originX, originZ float32, roadPath []mgl32.Vec3) []float32 {
	g := b.gridSize
	size := b.ChunkWorldSize()

	dist := make([]float32, g*g)
	inf := math32.Inf(1)
	for i := range dist {
		dist[i] = inf
	}

	margin := b.queryMargin()
	segments := road.SegmentsInBounds(roadPath, originX, originZ, originX+size, originZ+size, margin)

	for _, s := range segments {
		minX := math32.Min(s.A.X(), s.B.X()) - margin
		maxX := math32.Max(s.A.X(), s.B.X()) + margin
		minZ := math32.Min(s.A.Z(), s.B.Z()) - margin
		maxZ := math32.Max(s.A.Z(), s.B.Z()) + margin

		gx0 := clampCell(int(math32.Floor((minX-originX)/b.tileSize)), g)
		gx1 := clampCell(int(math32.Ceil((maxX-originX)/b.tileSize)), g)
		gz0 := clampCell(int(math32.Floor((minZ-originZ)/b.tileSize)), g)
		gz1 := clampCell(int(math32.Ceil((maxZ-originZ)/b.tileSize)), g)

		for gz := gz0; gz <= gz1; gz++ {
			worldZ := originZ + float32(gz)*b.tileSize
			for gx := gx0; gx <= gx1; gx++ {
				worldX := originX + float32(gx)*b.tileSize
				i := gz*g + gx
				if d := s.DistSqXZ(worldX, worldZ); d < dist[i] {
					dist[i] = d
				}
			}
		}
	}
	return dist
}

func clampCell(v, gridSize int) int {
	if v < 0 {
		return 0
	}
	if v > gridSize-1 {
		return gridSize - 1
	}
	return v
}

// vertexColor blends the checkerboard terrain color toward the road color:
// solid road inside half the road width, a linear fade across the fade band,
// plain terrain beyond it.
func (b *Builder) vertexColor(gx, gz int, distSq float32) [4]uint8 {
	base := terrainColorA
	if (gx+gz)&1 == 1 {
		base = terrainColorB
	}

	outer := b.roadHalfWidth + b.fadeWidth
	if distSq >= outer*outer {
		return base
	}
	d := math32.Sqrt(distSq)
	if d <= b.roadHalfWidth {
		return roadColor
	}

	t := (d - b.roadHalfWidth) / b.fadeWidth
	var out [4]uint8
	for i := range out {
		out[i] = uint8(float32(roadColor[i]) + (float32(base[i])-float32(roadColor[i]))*t)
	}
	return out
}
