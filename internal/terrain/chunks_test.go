package terrain

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// recordingUploader tracks upload/release calls so residency can be checked
// without a GPU.
type recordingUploader struct {
	uploaded map[Coord]int
	released map[Coord]int
	live     map[Coord]bool
	failNext error
}

func newRecordingUploader() *recordingUploader {
	return &recordingUploader{
		uploaded: make(map[Coord]int),
		released: make(map[Coord]int),
		live:     make(map[Coord]bool),
	}
}

func (u *recordingUploader) Upload(c Coord, mesh *MeshData, originX, originZ float32) error {
	if u.failNext != nil {
		err := u.failNext
		u.failNext = nil
		return err
	}
	u.uploaded[c]++
	u.live[c] = true
	return nil
}

func (u *recordingUploader) Release(c Coord) {
	u.released[c]++
	delete(u.live, c)
}

func testManager(radius int) (*Manager, *recordingUploader) {
	u := newRecordingUploader()
	return NewManager(testBuilder(8), u, radius, nil), u
}

// window returns the expected resident set for a center cell.
func window(cx, cz, radius int) map[Coord]bool {
	out := make(map[Coord]bool)
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			out[Coord{cx + dx, cz + dz}] = true
		}
	}
	return out
}

func checkResidency(t *testing.T, m *Manager, u *recordingUploader, cx, cz, radius int) {
	t.Helper()
	want := window(cx, cz, radius)
	got := m.Resident()
	if len(got) != len(want) {
		t.Fatalf("resident count %d, want %d", len(got), len(want))
	}
	seen := make(map[Coord]bool)
	for _, c := range got {
		if seen[c] {
			t.Fatalf("duplicate resident chunk %+v", c)
		}
		seen[c] = true
		if !want[c] {
			t.Fatalf("chunk %+v resident outside window", c)
		}
		if !u.live[c] {
			t.Fatalf("chunk %+v resident but not uploaded", c)
		}
	}
	for c := range u.live {
		if !seen[c] {
			t.Fatalf("chunk %+v uploaded but not tracked as resident", c)
		}
	}
}

func TestUpdateFillsWindow(t *testing.T) {
	m, u := testManager(2)

	if err := m.Update(mgl32.Vec3{0, 0, 0}, nil); err != nil {
		t.Fatal(err)
	}
	if m.Count() != 25 {
		t.Fatalf("resident count %d, want 25", m.Count())
	}
	checkResidency(t, m, u, 0, 0, 2)
}

func TestUpdateNeverBuildsTwice(t *testing.T) {
	m, u := testManager(2)

	pos := mgl32.Vec3{3, 0, 3}
	for i := 0; i < 5; i++ {
		if err := m.Update(pos, nil); err != nil {
			t.Fatal(err)
		}
	}
	for c, n := range u.uploaded {
		if n != 1 {
			t.Errorf("chunk %+v uploaded %d times, want 1", c, n)
		}
	}
}

func TestUpdateTracksVehicle(t *testing.T) {
	m, u := testManager(2)
	size := m.builder.ChunkWorldSize()

	// Drive the vehicle through several cells, including negative ones.
	cells := []struct{ cx, cz int }{{0, 0}, {1, 0}, {3, 2}, {-2, -5}, {-2, -4}, {0, 0}}
	for _, cell := range cells {
		pos := mgl32.Vec3{(float32(cell.cx) + 0.5) * size, 0, (float32(cell.cz) + 0.5) * size}
		if err := m.Update(pos, nil); err != nil {
			t.Fatal(err)
		}
		checkResidency(t, m, u, cell.cx, cell.cz, 2)
	}
}

func TestUpdateEvictsAndReleases(t *testing.T) {
	m, u := testManager(1)
	size := m.builder.ChunkWorldSize()

	if err := m.Update(mgl32.Vec3{0.5 * size, 0, 0.5 * size}, nil); err != nil {
		t.Fatal(err)
	}
	// Teleport far away: the old window must be fully released.
	if err := m.Update(mgl32.Vec3{100.5 * size, 0, 100.5 * size}, nil); err != nil {
		t.Fatal(err)
	}

	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			c := Coord{dx, dz}
			if u.released[c] != 1 {
				t.Errorf("chunk %+v released %d times, want 1", c, u.released[c])
			}
		}
	}
	checkResidency(t, m, u, 100, 100, 1)
}

func TestUpdateUploadFailureIsFatal(t *testing.T) {
	m, u := testManager(1)
	boom := errors.New("out of video memory")
	u.failNext = boom

	err := m.Update(mgl32.Vec3{0, 0, 0}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want wrapped %v", err, boom)
	}
}
