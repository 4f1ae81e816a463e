package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Uploader turns built chunk meshes into renderable resources. Upload is
// called exactly once when a chunk becomes resident and takes ownership of
// the mesh buffers; Release exactly once when it is evicted.
type Uploader interface {
	Upload(c Coord, mesh *MeshData, originX, originZ float32) error
	Release(c Coord)
}

// Manager keeps the resident chunk set equal to the window of cells within
// the render radius (Chebyshev distance) of the vehicle's cell. There is no
// persistent world grid: chunks outside the window simply do not exist.
type Manager struct {
	builder  *Builder
	uploader Uploader
	radius   int
	resident map[Coord]struct{}
	log      *zap.Logger
}

// NewManager returns a chunk manager streaming chunks within radius cells of
// the vehicle. A nil logger disables logging.
func NewManager(builder *Builder, uploader Uploader, radius int, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		builder:  builder,
		uploader: uploader,
		radius:   radius,
		resident: make(map[Coord]struct{}),
		log:      log,
	}
}

// Update recenters the resident window on pos: out-of-range chunks are
// released first, then every missing cell in the window is built against the
// current dense road path and uploaded. Already-resident chunks keep the
// road coloring they were built with until they are naturally evicted;
// road changes never trigger a rebuild.
//
// An upload failure is not recoverable and aborts the update with an error.
func (m *Manager) Update(pos mgl32.Vec3, roadPath []mgl32.Vec3) error {
	size := m.builder.ChunkWorldSize()
	center := Coord{
		X: int(math32.Floor(pos.X() / size)),
		Z: int(math32.Floor(pos.Z() / size)),
	}

	for c := range m.resident {
		if absInt(c.X-center.X) > m.radius || absInt(c.Z-center.Z) > m.radius {
			m.uploader.Release(c)
			delete(m.resident, c)
			m.log.Debug("chunk evicted", zap.Int("cx", c.X), zap.Int("cz", c.Z))
		}
	}

	for dz := -m.radius; dz <= m.radius; dz++ {
		for dx := -m.radius; dx <= m.radius; dx++ {
			c := Coord{X: center.X + dx, Z: center.Z + dz}
			if _, ok := m.resident[c]; ok {
				continue
			}
			mesh := m.builder.Build(c, roadPath)
			if err := m.uploader.Upload(c, mesh, float32(c.X)*size, float32(c.Z)*size); err != nil {
				return fmt.Errorf("uploading chunk (%d, %d): %w", c.X, c.Z, err)
			}
			m.resident[c] = struct{}{}
			m.log.Debug("chunk built", zap.Int("cx", c.X), zap.Int("cz", c.Z))
		}
	}
	return nil
}

// Resident returns the coordinates of the currently resident chunks, in no
// particular order.
func (m *Manager) Resident() []Coord {
	out := make([]Coord, 0, len(m.resident))
	for c := range m.resident {
		out = append(out, c)
	}
	return out
}

// Count returns the number of resident chunks.
func (m *Manager) Count() int {
	return len(m.resident)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
