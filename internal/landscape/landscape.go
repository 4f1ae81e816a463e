// Package landscape scatters trees and bushes around the car: a few spawn
// attempts per frame inside a ring around the vehicle, eviction beyond a
// larger radius, and rejection near the road or other elements.
package landscape

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/heightfield"
	"silly-roads/internal/road"
)

const (
	spawnRadius     = 200
	despawnRadius   = 250
	innerRadius     = 15 // keep a clear bubble right around the car
	minSpacing      = 8
	spawnsPerUpdate = 5
	paletteSize     = 3
)

// Kind discriminates the scatter element shapes.
type Kind int

const (
	Tree Kind = iota
	Bush
)

// Element is one scattered prop. Palette indexes a per-kind color table at
// draw time.
type Element struct {
	Position mgl32.Vec3
	Kind     Kind
	Size     float32
	Palette  int
}

// Scatter owns the live elements around the car.
type Scatter struct {
	heights       *heightfield.Field
	rng           *rand.Rand
	roadClearance float32
	elements      []Element
}

// New returns a scatter seeded deterministically. roadClearance is how close
// to the road center-line an element may spawn.
func New(heights *heightfield.Field, roadClearance float32, seed int64) *Scatter {
	return &Scatter{
		heights:       heights,
		rng:           rand.New(rand.NewSource(seed)),
		roadClearance: roadClearance,
	}
}

// Update despawns elements that fell behind and tries a handful of new
// spawns around center. Candidates too close to the road or to an existing
// element are simply skipped; the next frames try again.
func (s *Scatter) Update(center mgl32.Vec3, roadPath []mgl32.Vec3) {
	kept := s.elements[:0]
	for _, e := range s.elements {
		dx := e.Position.X() - center.X()
		dz := e.Position.Z() - center.Z()
		if dx*dx+dz*dz <= despawnRadius*despawnRadius {
			kept = append(kept, e)
		}
	}
	s.elements = kept

	for i := 0; i < spawnsPerUpdate; i++ {
		angle := s.rng.Float32() * 2 * math32.Pi
		radius := innerRadius + s.rng.Float32()*(spawnRadius-innerRadius)
		x := center.X() + math32.Cos(angle)*radius
		z := center.Z() + math32.Sin(angle)*radius

		if s.nearRoad(x, z, roadPath) || s.tooClose(x, z) {
			continue
		}

		e := Element{
			Position: mgl32.Vec3{x, s.heights.Height(x, z), z},
			Palette:  s.rng.Intn(paletteSize),
		}
		sizeVar := 0.8 + s.rng.Float32()*0.4
		if s.rng.Float32() < 0.4 {
			e.Kind = Tree
			e.Size = (5 + s.rng.Float32()*4) * sizeVar
		} else {
			e.Kind = Bush
			e.Size = (1 + s.rng.Float32()*1.5) * sizeVar
		}
		s.elements = append(s.elements, e)
	}
}

// Elements returns the live elements. The slice is owned by the scatter and
// only valid until the next Update.
func (s *Scatter) Elements() []Element {
	return s.elements
}

func (s *Scatter) nearRoad(x, z float32, roadPath []mgl32.Vec3) bool {
	c := s.roadClearance
	for _, seg := range road.SegmentsInBounds(roadPath, x, z, x, z, c) {
		if seg.DistSqXZ(x, z) < c*c {
			return true
		}
	}
	return false
}

func (s *Scatter) tooClose(x, z float32) bool {
	for _, e := range s.elements {
		dx := e.Position.X() - x
		dz := e.Position.Z() - z
		if dx*dx+dz*dz < minSpacing*minSpacing {
			return true
		}
	}
	return false
}
