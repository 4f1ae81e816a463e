// Package scene holds the 3D chase camera that follows the car.
package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"silly-roads/internal/heightfield"
)

const (
	followDistance  = 15
	followHeight    = 8
	followLerpRate  = 3
	groundClearance = 2
)

// Chase is a smoothed third-person camera. It trails the car along its
// heading and never dips below the terrain.
type Chase struct {
	Camera  rl.Camera3D
	heights *heightfield.Field
}

// NewChase returns a chase camera starting behind the given target.
func NewChase(heights *heightfield.Field, target mgl32.Vec3, heading float32) *Chase {
	c := &Chase{heights: heights}
	c.Camera.Position = desiredPosition(target, heading)
	c.Camera.Target = rl.NewVector3(target.X(), target.Y(), target.Z())
	c.Camera.Up = rl.NewVector3(0, 1, 0)
	c.Camera.Fovy = 45
	c.Camera.Projection = rl.CameraPerspective
	return c
}

// Update moves the camera toward its ideal spot behind the target.
func (c *Chase) Update(target mgl32.Vec3, heading, dt float32) {
	want := desiredPosition(target, heading)
	c.Camera.Position = rl.Vector3Lerp(c.Camera.Position, want, dt*followLerpRate)

	floor := c.heights.Height(c.Camera.Position.X, c.Camera.Position.Z) + groundClearance
	if c.Camera.Position.Y < floor {
		c.Camera.Position.Y = floor
	}
	c.Camera.Target = rl.NewVector3(target.X(), target.Y(), target.Z())
}

func desiredPosition(target mgl32.Vec3, heading float32) rl.Vector3 {
	return rl.NewVector3(
		target.X()-math32.Sin(heading)*followDistance,
		target.Y()+followHeight,
		target.Z()-math32.Cos(heading)*followDistance,
	)
}
