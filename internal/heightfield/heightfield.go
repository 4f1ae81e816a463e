// Package heightfield maps world (x, z) coordinates to terrain elevation and
// surface normals. It is the single source of truth for ground shape: the
// mesh builder, the road generator, and the car all sample it directly.
package heightfield

import (
	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/noise"
)

// normalStep is the central-difference epsilon for Normal.
const normalStep = 0.1

// Field derives elevation from one 3D noise sample on the y=0 plane.
// Frequency controls the horizontal scale of features (cycles per world
// unit); amplitude is the vertical relief in world units.
type Field struct {
	noise     *noise.Perlin
	frequency float32
	amplitude float32
}

// New returns a height field over the given noise generator.
func New(n *noise.Perlin, frequency, amplitude float32) *Field {
	return &Field{noise: n, frequency: frequency, amplitude: amplitude}
}

// Height returns the terrain elevation at world (x, z).
func (f *Field) Height(x, z float32) float32 {
	return f.noise.Sample(x*f.frequency, 0, z*f.frequency) * f.amplitude
}

// Normal estimates the surface normal at world (x, z) by central difference.
// The result is unit length with a non-negative Y component; a perfectly
// flat neighborhood yields straight up.
func (f *Field) Normal(x, z float32) mgl32.Vec3 {
	h := f.Height(x, z)
	hx := f.Height(x+normalStep, z)
	hz := f.Height(x, z+normalStep)

	tangentX := mgl32.Vec3{normalStep, hx - h, 0}
	tangentZ := mgl32.Vec3{0, hz - h, normalStep}

	// tangentZ x tangentX has Y = normalStep^2 > 0, so the normal always
	// points upward for a height-field surface.
	n := tangentZ.Cross(tangentX)
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
