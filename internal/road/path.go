package road

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// pruneSlack is how far past the retention window the closest control point
// may drift before a prune actually runs. Pruning on every frame would churn
// the slice for no benefit.
const pruneSlack = 16

// Path owns the road's control points, the generation cursor, and the dense
// spline expansion the spatial query consumes. It is not safe for concurrent
// use; the frame loop is its only caller.
type Path struct {
	gen    *Generator
	cursor Cursor

	points []mgl32.Vec3
	dense  []mgl32.Vec3

	lookahead         int
	keepBehind        int
	samplesPerSegment int
}

// NewPath returns an empty path. The first ExtendAndPrune call anchors the
// road at the zero cursor and fills the lookahead window.
func NewPath(gen *Generator, lookahead, keepBehind, samplesPerSegment int) *Path {
	return &Path{
		gen:               gen,
		lookahead:         lookahead,
		keepBehind:        keepBehind,
		samplesPerSegment: samplesPerSegment,
	}
}

// ExtendAndPrune keeps the control-point window centered on the vehicle:
// it restores the lookahead count ahead of the closest control point, drops
// trailing points beyond the retention window, and rebuilds the dense path
// whenever the control points changed.
func (p *Path) ExtendAndPrune(pos mgl32.Vec3) {
	closest := p.closestIndex(pos)

	generated := false
	for len(p.points)-1-closest < p.lookahead {
		p.points = append(p.points, p.gen.Next(&p.cursor))
		generated = true
	}
	if !generated {
		return
	}

	if closest > p.keepBehind+pruneSlack {
		p.points = p.points[closest-p.keepBehind:]
	}
	p.dense = Interpolate(p.points, p.samplesPerSegment)
}

// closestIndex finds the control point nearest pos in the XZ plane. Linear
// scan: the pruning policy keeps the point count small and bounded.
func (p *Path) closestIndex(pos mgl32.Vec3) int {
	best := 0
	bestDistSq := float32(math32.MaxFloat32)
	for i, pt := range p.points {
		dx := pt.X() - pos.X()
		dz := pt.Z() - pos.Z()
		if d := dx*dx + dz*dz; d < bestDistSq {
			best = i
			bestDistSq = d
		}
	}
	return best
}

// Dense returns the spline-interpolated center-line. The slice is replaced,
// never mutated in place, so callers may hold it across ExtendAndPrune calls.
func (p *Path) Dense() []mgl32.Vec3 {
	return p.dense
}

// ControlPoints returns the current sparse control points.
func (p *Path) ControlPoints() []mgl32.Vec3 {
	return p.points
}

// Cursor returns a snapshot of the generation cursor, e.g. for persisting
// the road across sessions.
func (p *Path) Cursor() Cursor {
	return p.cursor
}
