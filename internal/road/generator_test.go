package road

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/heightfield"
	"silly-roads/internal/noise"
)

func testHeights() *heightfield.Field {
	return heightfield.New(noise.New(42), 0.05, 7)
}

func TestFirstPointAnchorsAtCursor(t *testing.T) {
	gen := NewGenerator(testHeights(), 20)

	c := Cursor{X: 12.5, Z: -4}
	p := gen.Next(&c)
	if p.X() != 12.5 || p.Z() != -4 {
		t.Fatalf("first point moved to (%f, %f), want (12.5, -4)", p.X(), p.Z())
	}
	if c.Index != 1 {
		t.Fatalf("cursor index = %d after first point, want 1", c.Index)
	}
}

func TestStepDistanceBetweenPoints(t *testing.T) {
	gen := NewGenerator(testHeights(), 20)

	var c Cursor
	prev := gen.Next(&c)
	for i := 0; i < 50; i++ {
		next := gen.Next(&c)
		dx := next.X() - prev.X()
		dz := next.Z() - prev.Z()
		dist := math32.Sqrt(dx*dx + dz*dz)
		if math32.Abs(dist-20) > 1e-3 {
			t.Fatalf("point %d is %f units from previous, want 20", i+1, dist)
		}
		prev = next
	}
}

// Generating the full sequence in one pass must equal generating a prefix,
// snapshotting the cursor, and resuming from the snapshot. The cursor's four
// scalars are the whole continuation state.
func TestContinuationInvariant(t *testing.T) {
	const total, split = 100, 37

	gen := NewGenerator(testHeights(), 20)

	var full Cursor
	onePass := make([]mgl32.Vec3, total)
	for i := range onePass {
		onePass[i] = gen.Next(&full)
	}

	var c Cursor
	resumed := make([]mgl32.Vec3, 0, total)
	for i := 0; i < split; i++ {
		resumed = append(resumed, gen.Next(&c))
	}
	snapshot := c
	c = snapshot // a fresh copy carries everything needed to continue
	for i := split; i < total; i++ {
		resumed = append(resumed, gen.Next(&c))
	}

	for i := range onePass {
		if onePass[i] != resumed[i] {
			t.Fatalf("point %d differs: one-pass %v, resumed %v", i, onePass[i], resumed[i])
		}
	}
}

func TestPointHeightMatchesField(t *testing.T) {
	heights := testHeights()
	gen := NewGenerator(heights, 20)

	var c Cursor
	for i := 0; i < 20; i++ {
		p := gen.Next(&c)
		if want := heights.Height(p.X(), p.Z()); p.Y() != want {
			t.Fatalf("point %d has y=%f, height field says %f", i, p.Y(), want)
		}
	}
}
