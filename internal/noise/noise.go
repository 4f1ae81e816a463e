// Package noise implements Ken Perlin's improved gradient noise over a
// seeded permutation table. The table is built once at construction and is
// read-only afterwards, so a single generator can back every terrain query.
package noise

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// Perlin produces deterministic, continuous gradient noise in roughly
// [-1, 1]. Values repeat only at 256-unit lattice boundaries per axis.
type Perlin struct {
	perm [512]int
}

// New returns a generator whose permutation table is the integers 0..255
// shuffled by seed, then doubled so corner hashing never needs an explicit
// wraparound.
func New(seed int64) *Perlin {
	var table [256]int
	for i := range table {
		table[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(table), func(i, j int) {
		table[i], table[j] = table[j], table[i]
	})

	p := &Perlin{}
	for i := range p.perm {
		p.perm[i] = table[i&255]
	}
	return p
}

// Sample evaluates 3D noise at (x, y, z). Inputs must be finite; NaN or Inf
// coordinates are a caller bug, not something Sample checks for.
func (p *Perlin) Sample(x, y, z float32) float32 {
	xi := int(math32.Floor(x)) & 255
	yi := int(math32.Floor(y)) & 255
	zi := int(math32.Floor(z)) & 255

	x -= math32.Floor(x)
	y -= math32.Floor(y)
	z -= math32.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	a := p.perm[xi] + yi
	aa := p.perm[a] + zi
	ab := p.perm[a+1] + zi
	b := p.perm[xi+1] + yi
	ba := p.perm[b] + zi
	bb := p.perm[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(p.perm[aa], x, y, z), grad(p.perm[ba], x-1, y, z)),
			lerp(u, grad(p.perm[ab], x, y-1, z), grad(p.perm[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p.perm[aa+1], x, y, z-1), grad(p.perm[ba+1], x-1, y, z-1)),
			lerp(u, grad(p.perm[ab+1], x, y-1, z-1), grad(p.perm[bb+1], x-1, y-1, z-1))))
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3 curve; C2-continuous so lattice
// crossings leave no visible creases.
func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float32) float32 {
	return a + t*(b-a)
}

// grad picks one of 16 gradient directions from the corner hash and returns
// its dot product with the offset vector.
func grad(hash int, x, y, z float32) float32 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	var v float32
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
