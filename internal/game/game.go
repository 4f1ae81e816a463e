// Package game wires the generation pipeline to the window: one Game owns
// the height field, road, chunk streaming, car, camera, and scatter, and
// steps them in order every frame.
package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"silly-roads/internal/config"
	"silly-roads/internal/heightfield"
	"silly-roads/internal/landscape"
	"silly-roads/internal/noise"
	"silly-roads/internal/render"
	"silly-roads/internal/road"
	"silly-roads/internal/scene"
	"silly-roads/internal/telemetry"
	"silly-roads/internal/terrain"
	"silly-roads/internal/vehicle"
)

// maxFrameDt caps the simulation step so a stall (window drag, debugger)
// does not launch the car.
const maxFrameDt = 0.1

// Game holds every subsystem for one run.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	heights  *heightfield.Field
	path     *road.Path
	renderer *render.ChunkRenderer
	chunks   *terrain.Manager
	car      *vehicle.Car
	camera   *scene.Chase
	scatter  *landscape.Scatter
	stats    *telemetry.Server

	frame uint64
}

// New builds the full pipeline from the configuration. The window does not
// exist yet; nothing here may touch the GPU.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}

	heights := heightfield.New(noise.New(cfg.Terrain.Seed), cfg.Terrain.NoiseFrequency, cfg.Terrain.HeightScale)
	gen := road.NewGenerator(heights, cfg.Road.StepSize)
	path := road.NewPath(gen, cfg.Road.Lookahead, cfg.Road.KeepBehind, cfg.Road.SamplesPerSegment)
	builder := terrain.NewBuilder(heights, cfg.Terrain.GridSize, cfg.Terrain.TileSize, cfg.Road.Width, cfg.Road.FadeWidth)
	renderer := render.NewChunkRenderer()

	start := mgl32.Vec3{0, heights.Height(0, 0), 0}

	g := &Game{
		cfg:      cfg,
		log:      log,
		heights:  heights,
		path:     path,
		renderer: renderer,
		chunks:   terrain.NewManager(builder, renderer, cfg.Terrain.ChunkRadius, log),
		car:      vehicle.New(heights, start, 0),
		camera:   scene.NewChase(heights, start, 0),
		scatter:  landscape.New(heights, cfg.Road.Width*0.5+cfg.Road.FadeWidth, cfg.Terrain.Seed),
	}

	if cfg.Telemetry.Enabled {
		g.stats = telemetry.NewServer(log)
		if err := g.stats.Start(cfg.Telemetry.Addr); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Run opens the window and drives the frame loop until the window closes.
func (g *Game) Run() error {
	rl.InitWindow(int32(g.cfg.Window.Width), int32(g.cfg.Window.Height), g.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(g.cfg.Window.TargetFPS))

	g.log.Info("world ready",
		zap.Int64("seed", g.cfg.Terrain.Seed),
		zap.Int("gridSize", g.cfg.Terrain.GridSize),
		zap.Int("chunkRadius", g.cfg.Terrain.ChunkRadius))

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		if dt > maxFrameDt {
			dt = maxFrameDt
		}
		if err := g.step(dt); err != nil {
			return err
		}
		g.draw()
		g.publishStats()
		g.frame++
	}
	return nil
}

// step advances the world one frame: road window first, then chunks against
// the fresh dense path, then the car and everything that follows it.
func (g *Game) step(dt float32) error {
	g.path.ExtendAndPrune(g.car.Position)
	if err := g.chunks.Update(g.car.Position, g.path.Dense()); err != nil {
		return err
	}

	g.car.Update(readControls(), dt)
	g.camera.Update(g.car.Position, g.car.Heading, dt)
	g.scatter.Update(g.car.Position, g.path.Dense())
	return nil
}

func readControls() vehicle.Controls {
	var in vehicle.Controls
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		in.Throttle = 1
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		in.Throttle = -1
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		in.Steer = -1
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		in.Steer = 1
	}
	return in
}

func (g *Game) publishStats() {
	if g.stats == nil {
		return
	}
	pos := g.car.Position
	g.stats.Broadcast(telemetry.Stats{
		Frame:          g.frame,
		Position:       [3]float32{pos.X(), pos.Y(), pos.Z()},
		Speed:          g.car.Speed,
		ResidentChunks: g.chunks.Count(),
		ControlPoints:  len(g.path.ControlPoints()),
		DensePoints:    len(g.path.Dense()),
	})
}

// Close shuts down everything that outlives the frame loop.
func (g *Game) Close() {
	g.renderer.Close()
	if g.stats != nil {
		g.stats.Close()
	}
}
