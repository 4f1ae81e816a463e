// Package road generates the endless winding road: sparse control points
// emitted from a tiny resumable cursor, a Catmull-Rom densification of those
// points, and a bounding-box query that hands nearby segments to the terrain
// colorer.
package road

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/heightfield"
)

// headingGain scales the per-point heading perturbation.
const headingGain = 0.2

// Cursor is the complete continuation state of road generation. Resuming
// from a copied Cursor produces exactly the points a single uninterrupted
// run would have produced; nothing else feeds into generation.
type Cursor struct {
	X     float32 `yaml:"x" json:"x"`
	Z     float32 `yaml:"z" json:"z"`
	Angle float32 `yaml:"angle" json:"angle"`
	Index int     `yaml:"index" json:"index"`
}

// Generator emits control points along a heading that drifts by a cheap
// deterministic oscillation. The oscillation is intentionally independent of
// the gradient-noise lattice: road continuity must not depend on where the
// terrain noise happens to be sampled.
type Generator struct {
	heights *heightfield.Field
	step    float32
}

// NewGenerator returns a generator placing control points step world units
// apart.
func NewGenerator(heights *heightfield.Field, step float32) *Generator {
	return &Generator{heights: heights, step: step}
}

// Next emits the control point at c.Index and advances the cursor. The very
// first point anchors the path at the cursor position without moving;
// every later point steps along the current heading first.
func (g *Generator) Next(c *Cursor) mgl32.Vec3 {
	if c.Index > 0 {
		c.X += math32.Sin(c.Angle) * g.step
		c.Z += math32.Cos(c.Angle) * g.step
	}
	point := mgl32.Vec3{c.X, g.heights.Height(c.X, c.Z), c.Z}

	c.Angle += headingNoise(c.Index) * headingGain
	c.Index++
	return point
}

// headingNoise is the curvature term for the point at the given sequence
// index.
func headingNoise(index int) float32 {
	i := float32(index)
	return math32.Sin(i*0.3)*0.5 + math32.Cos(i*0.17)*0.3
}
