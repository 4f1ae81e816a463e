package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/heightfield"
	"silly-roads/internal/noise"
)

func testBuilder(gridSize int) *Builder {
	heights := heightfield.New(noise.New(42), 0.05, 7)
	return NewBuilder(heights, gridSize, 1, 8, 4)
}

func TestBuildBufferSizes(t *testing.T) {
	for _, g := range []int{2, 8, 32} {
		b := testBuilder(g)
		m := b.Build(Coord{0, 0}, nil)

		wantVerts := g * g
		wantTris := 2 * (g - 1) * (g - 1)
		if m.VertexCount != wantVerts {
			t.Errorf("grid %d: vertex count %d, want %d", g, m.VertexCount, wantVerts)
		}
		if m.TriangleCount != wantTris {
			t.Errorf("grid %d: triangle count %d, want %d", g, m.TriangleCount, wantTris)
		}
		if len(m.Vertices) != wantVerts*3 || len(m.Normals) != wantVerts*3 {
			t.Errorf("grid %d: position/normal buffer length mismatch", g)
		}
		if len(m.TexCoords) != wantVerts*2 {
			t.Errorf("grid %d: texcoord buffer length %d, want %d", g, len(m.TexCoords), wantVerts*2)
		}
		if len(m.Colors) != wantVerts*4 {
			t.Errorf("grid %d: color buffer length %d, want %d", g, len(m.Colors), wantVerts*4)
		}
		if len(m.Indices) != wantTris*3 {
			t.Errorf("grid %d: index buffer length %d, want %d", g, len(m.Indices), wantTris*3)
		}
	}
}

func TestBuildLocalPositionsWorldHeights(t *testing.T) {
	b := testBuilder(32)
	heights := heightfield.New(noise.New(42), 0.05, 7)
	c := Coord{3, -2}
	size := b.ChunkWorldSize()

	m := b.Build(c, nil)

	// First vertex sits at the chunk-local origin.
	if m.Vertices[0] != 0 || m.Vertices[2] != 0 {
		t.Errorf("first vertex at local (%f, %f), want (0, 0)", m.Vertices[0], m.Vertices[2])
	}
	// Last vertex spans the full chunk edge.
	last := (32*32 - 1) * 3
	if m.Vertices[last] != size || m.Vertices[last+2] != size {
		t.Errorf("last vertex at local (%f, %f), want (%f, %f)", m.Vertices[last], m.Vertices[last+2], size, size)
	}
	// Heights are computed in world coordinates, not local ones.
	if want := heights.Height(float32(c.X)*size, float32(c.Z)*size); m.Vertices[1] != want {
		t.Errorf("first vertex height %f, want world-sampled %f", m.Vertices[1], want)
	}
}

func TestBuildIndicesCoverGrid(t *testing.T) {
	b := testBuilder(8)
	m := b.Build(Coord{0, 0}, nil)

	seen := make(map[uint16]bool)
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount {
			t.Fatalf("index %d out of range (%d vertices)", idx, m.VertexCount)
		}
		seen[idx] = true
	}
	if len(seen) != m.VertexCount {
		t.Errorf("indices reference %d distinct vertices, want all %d", len(seen), m.VertexCount)
	}
}

func TestBuildCheckerboardWithoutRoad(t *testing.T) {
	b := testBuilder(8)
	m := b.Build(Coord{0, 0}, nil)

	for gz := 0; gz < 8; gz++ {
		for gx := 0; gx < 8; gx++ {
			i := gz*8 + gx
			want := terrainColorA
			if (gx+gz)&1 == 1 {
				want = terrainColorB
			}
			got := [4]uint8(m.Colors[i*4 : i*4+4])
			if got != want {
				t.Fatalf("vertex (%d, %d) color %v, want %v", gx, gz, got, want)
			}
		}
	}
}

func TestBuildRoadColoring(t *testing.T) {
	b := testBuilder(32)
	// A straight road along x=16 crossing the whole chunk.
	roadPath := []mgl32.Vec3{{16, 0, -10}, {16, 0, 40}}

	m := b.Build(Coord{0, 0}, roadPath)

	colorAt := func(gx, gz int) [4]uint8 {
		i := gz*32 + gx
		return [4]uint8(m.Colors[i*4 : i*4+4])
	}

	// On the center line: solid road color.
	if got := colorAt(16, 10); got != roadColor {
		t.Errorf("center-line vertex color %v, want road %v", got, roadColor)
	}
	// 3 units away, still inside the 4-unit half width.
	if got := colorAt(19, 10); got != roadColor {
		t.Errorf("vertex 3 units out colored %v, want road %v", got, roadColor)
	}
	// 6 units away: inside the fade band, strictly between road and terrain.
	if got := colorAt(22, 10); got == roadColor || got == terrainColorA || got == terrainColorB {
		t.Errorf("fade-band vertex color %v, want a blend", got)
	}
	// 12 units away: beyond half width + fade, plain checkerboard.
	want := terrainColorA
	if (28+10)&1 == 1 {
		want = terrainColorB
	}
	if got := colorAt(28, 10); got != want {
		t.Errorf("far vertex color %v, want terrain %v", got, want)
	}
}

func TestBuildRoadColoringFromNeighborChunk(t *testing.T) {
	b := testBuilder(32)
	// Road just outside the chunk's +X edge; the margin must still tint the
	// boundary vertices.
	size := b.ChunkWorldSize()
	roadPath := []mgl32.Vec3{{size + 2, 0, -10}, {size + 2, 0, 40}}

	m := b.Build(Coord{0, 0}, roadPath)

	i := 10*32 + 31 // boundary vertex at local x = size, 2 units from the road
	got := [4]uint8(m.Colors[i*4 : i*4+4])
	if got != roadColor {
		t.Errorf("boundary vertex color %v, want road %v", got, roadColor)
	}
}
