package road

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Segment is an ordered pair of adjacent dense-path points, the unit the
// terrain colorer measures distances against.
type Segment struct {
	A, B mgl32.Vec3
}

// DistSqXZ returns the squared distance from (x, z) to the segment in the XZ
// plane, using the clamped projection onto the segment.
func (s Segment) DistSqXZ(x, z float32) float32 {
	ax, az := s.A.X(), s.A.Z()
	dx := s.B.X() - ax
	dz := s.B.Z() - az

	var t float32
	if lenSq := dx*dx + dz*dz; lenSq > 0 {
		t = ((x-ax)*dx + (z-az)*dz) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	px := ax + dx*t - x
	pz := az + dz*t - z
	return px*px + pz*pz
}

// SegmentsInBounds walks the dense path once and returns every segment whose
// XZ bounding box overlaps the query rectangle inflated by margin on all
// sides. The margin must cover half the road width plus the color fade band,
// or chunk-edge vertices lose their road tint. Paths with fewer than two
// points have no segments.
func SegmentsInBounds(path []mgl32.Vec3, minX, minZ, maxX, maxZ, margin float32) []Segment {
	if len(path) < 2 {
		return nil
	}

	minX -= margin
	maxX += margin
	minZ -= margin
	maxZ += margin

	var out []Segment
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if math32.Max(a.X(), b.X()) < minX || math32.Min(a.X(), b.X()) > maxX ||
			math32.Max(a.Z(), b.Z()) < minZ || math32.Min(a.Z(), b.Z()) > maxZ {
			continue
		}
		out = append(out, Segment{A: a, B: b})
	}
	return out
}
