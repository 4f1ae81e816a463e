// Package vehicle implements the arcade car: a single speed scalar pushed
// along a heading, with the body height, pitch, and roll derived from
// terrain samples under the four wheels.
package vehicle

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/heightfield"
)

const (
	accel     = 200 // forward acceleration per second
	brake     = 400 // braking/reverse force
	maxSpeed  = 120
	drag      = 0.98
	turnRate  = 2 // rad/s at full steer

	maxSteerAngle = 0.52 // visual front-wheel deflection
	steerLerpRate = 8

	rideHeight     = 0.5
	suspensionRate = 20 // vertical settle speed
	tiltRate       = 15 // pitch/roll settle speed
	wheelBase      = 3  // front-to-back wheel distance
	trackWidth     = 2  // left-to-right wheel distance
)

// Controls is the per-frame driver input. Throttle runs from -1 (brake or
// reverse) to 1 (full throttle); Steer from -1 (left) to 1 (right).
type Controls struct {
	Throttle float32
	Steer    float32
}

// wheelOffsets are the wheel contact points relative to the car body:
// FR, FL, BR, BL.
var wheelOffsets = [4]mgl32.Vec3{
	{-1, -0.3, 1.5},
	{1, -0.3, 1.5},
	{-1, -0.3, -1.5},
	{1, -0.3, -1.5},
}

// Car is the vehicle state. Position/Heading/Speed drive the simulation;
// Pitch, Roll, and SteerAngle only exist for rendering.
type Car struct {
	Position mgl32.Vec3
	Heading  float32
	Speed    float32

	Pitch      float32
	Roll       float32
	SteerAngle float32

	heights *heightfield.Field
}

// New returns a car resting on the terrain at pos with the given heading.
func New(heights *heightfield.Field, pos mgl32.Vec3, heading float32) *Car {
	return &Car{Position: pos, Heading: heading, heights: heights}
}

// Update advances the car by dt seconds under the given controls.
func (c *Car) Update(in Controls, dt float32) {
	// Steering only bites when moving; reversing flips the turn direction.
	if math32.Abs(c.Speed) > 0.5 {
		turnFactor := float32(1)
		if c.Speed < 0 {
			turnFactor = -1
		}
		c.Heading -= in.Steer * turnRate * dt * turnFactor
	}

	hasInput := in.Throttle != 0
	if in.Throttle > 0 {
		c.Speed += accel * in.Throttle * dt
	} else if in.Throttle < 0 {
		c.Speed += brake * in.Throttle * dt
	}

	if c.Speed > maxSpeed {
		c.Speed = maxSpeed
	} else if c.Speed < -maxSpeed {
		c.Speed = -maxSpeed
	}
	c.Speed *= drag
	if !hasInput && math32.Abs(c.Speed) < 0.1 {
		c.Speed = 0
	}

	sin := math32.Sin(c.Heading)
	cos := math32.Cos(c.Heading)
	c.Position[0] += sin * c.Speed * dt
	c.Position[2] += cos * c.Speed * dt

	targetSteer := -in.Steer * maxSteerAngle
	c.SteerAngle += (targetSteer - c.SteerAngle) * steerLerpRate * dt

	// Sample terrain under each wheel in world space.
	var h [4]float32
	var avg float32
	for i, off := range wheelOffsets {
		wx := c.Position.X() + off.X()*cos + off.Z()*sin
		wz := c.Position.Z() - off.X()*sin + off.Z()*cos
		h[i] = c.heights.Height(wx, wz)
		avg += h[i]
	}
	avg *= 0.25

	targetY := avg + rideHeight
	if c.Position.Y() < targetY {
		c.Position[1] = targetY
	}
	c.Position[1] += (targetY - c.Position.Y()) * suspensionRate * dt

	frontH := (h[0] + h[1]) * 0.5
	backH := (h[2] + h[3]) * 0.5
	leftH := (h[0] + h[2]) * 0.5
	rightH := (h[1] + h[3]) * 0.5
	c.Pitch += (math32.Atan2(backH-frontH, wheelBase) - c.Pitch) * tiltRate * dt
	c.Roll += (math32.Atan2(rightH-leftH, trackWidth) - c.Roll) * tiltRate * dt
}

// WheelOffsets returns the wheel contact points in car-local space, for
// rendering. Index order is FR, FL, BR, BL; the first two steer.
func WheelOffsets() [4]mgl32.Vec3 {
	return wheelOffsets
}
