package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"silly-roads/internal/landscape"
	"silly-roads/internal/vehicle"
)

var (
	skyColor  = rl.NewColor(135, 206, 235, 255)
	bodyColor = rl.NewColor(200, 40, 40, 255)
	cabColor  = rl.NewColor(170, 200, 220, 255)
	tireColor = rl.NewColor(30, 30, 30, 255)

	trunkColor    = rl.NewColor(96, 70, 50, 255)
	canopyPalette = [3]rl.Color{
		rl.NewColor(46, 110, 52, 255),
		rl.NewColor(60, 128, 58, 255),
		rl.NewColor(38, 96, 60, 255),
	}
	bushPalette = [3]rl.Color{
		rl.NewColor(70, 120, 64, 255),
		rl.NewColor(84, 134, 70, 255),
		rl.NewColor(62, 108, 58, 255),
	}
)

func (g *Game) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	rl.BeginMode3D(g.camera.Camera)
	g.renderer.Draw()
	g.drawScatter()
	g.drawCar()
	rl.EndMode3D()

	g.drawHUD()
	rl.EndDrawing()
}

func (g *Game) drawScatter() {
	for _, e := range g.scatter.Elements() {
		pos := rl.NewVector3(e.Position.X(), e.Position.Y(), e.Position.Z())
		switch e.Kind {
		case landscape.Tree:
			trunkTop := rl.NewVector3(pos.X, pos.Y+e.Size*0.45, pos.Z)
			rl.DrawCylinderEx(pos, trunkTop, e.Size*0.06, e.Size*0.05, 6, trunkColor)
			canopy := rl.NewVector3(pos.X, pos.Y+e.Size*0.65, pos.Z)
			rl.DrawSphere(canopy, e.Size*0.35, canopyPalette[e.Palette])
		case landscape.Bush:
			center := rl.NewVector3(pos.X, pos.Y+e.Size*0.4, pos.Z)
			rl.DrawSphere(center, e.Size*0.6, bushPalette[e.Palette])
		}
	}
}

// drawCar renders the car as a body box, a cabin, and four wheels, oriented
// by heading with the pitch/roll tilt from the suspension.
func (g *Game) drawCar() {
	c := g.car

	rl.PushMatrix()
	rl.Translatef(c.Position.X(), c.Position.Y(), c.Position.Z())
	rl.Rotatef(c.Heading*rl.Rad2deg, 0, 1, 0)
	rl.Rotatef(c.Pitch*rl.Rad2deg, 1, 0, 0)
	rl.Rotatef(c.Roll*rl.Rad2deg, 0, 0, 1)

	rl.DrawCube(rl.NewVector3(0, 0.4, 0), 2, 0.7, 4, bodyColor)
	rl.DrawCube(rl.NewVector3(0, 1.0, -0.3), 1.6, 0.6, 1.8, cabColor)

	for i, off := range vehicle.WheelOffsets() {
		rl.PushMatrix()
		rl.Translatef(off.X(), off.Y(), off.Z())
		if i < 2 { // front wheels follow the steering
			rl.Rotatef(c.SteerAngle*rl.Rad2deg, 0, 1, 0)
		}
		rl.DrawCylinderEx(rl.NewVector3(-0.15, 0, 0), rl.NewVector3(0.15, 0, 0), 0.4, 0.4, 10, tireColor)
		rl.PopMatrix()
	}
	rl.PopMatrix()
}

func (g *Game) drawHUD() {
	pos := g.car.Position
	rl.DrawText(fmt.Sprintf("%.0f km/h", g.car.Speed*3.6), 20, 20, 30, rl.White)
	rl.DrawText(fmt.Sprintf("x %.0f  z %.0f", pos.X(), pos.Z()), 20, 56, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("chunks %d", g.chunks.Count()), 20, 80, 20, rl.RayWhite)
	rl.DrawFPS(int32(g.cfg.Window.Width)-100, 20)
}
