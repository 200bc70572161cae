// Package gui is the raylib window front end for the pendulum simulation.
package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/pendulum"
	"github.com/san-kum/pendulums/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// Monochrome theme; pendulums carry their own colours.
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPivot   = rl.NewColor(180, 180, 180, 255)
)

const (
	rodThickness   = 2
	trailThickness = 1
	bobRadius      = 4
)

type keyBinding struct {
	key int32
	cmd sim.Command
}

// keyBindings is ordered so keys pressed in the same frame are submitted
// in a fixed order.
var keyBindings = []keyBinding{
	{rl.KeyR, sim.CmdReset},
	{rl.KeyS, sim.CmdSpawnOne},
	{rl.KeyW, sim.CmdSpawnMany},
	{rl.KeyA, sim.CmdToggleTrails},
	{rl.KeyP, sim.CmdTogglePendulums},
	{rl.KeyD, sim.CmdToggleDamping},
}

// pressedCommands returns the commands whose keys are down, in binding order.
func pressedCommands(pressed func(key int32) bool) []sim.Command {
	var cmds []sim.Command
	for _, b := range keyBindings {
		if pressed(b.key) {
			cmds = append(cmds, b.cmd)
		}
	}
	return cmds
}

type App struct {
	Sim     *sim.Simulation
	Screen  Screen
	Width   int32
	Height  int32
	Running bool
	Stats   sim.FrameStats
}

// Screen maps simulation space onto the window: the pivot sits at the
// centre, y points up, and one simulation unit is Scale pixels.
type Screen struct {
	Scale  float64
	Origin r2.Vec
}

func NewScreen(width, height int32, scale float64) Screen {
	return Screen{Scale: scale, Origin: r2.Vec{X: float64(width) / 2, Y: float64(height) / 2}}
}

func (s Screen) Project(p r2.Vec) rl.Vector2 {
	return rl.NewVector2(
		float32(s.Origin.X+p.X*s.Scale),
		float32(s.Origin.Y-p.Y*s.Scale),
	)
}

func rlColor(c pendulum.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.NewColor(r, g, b, a)
}

// windowRenderer draws simulation geometry between BeginDrawing and
// EndDrawing.
type windowRenderer struct {
	screen Screen
	buf    []rl.Vector2
}

func (w *windowRenderer) DrawSegment(start, end r2.Vec, c pendulum.Color) {
	a, b := w.screen.Project(start), w.screen.Project(end)
	col := rlColor(c)
	rl.DrawLineEx(a, b, rodThickness, col)
	rl.DrawCircleV(b, bobRadius, col)
}

func (w *windowRenderer) DrawPath(points []r2.Vec, c pendulum.Color) {
	w.buf = w.buf[:0]
	for _, p := range points {
		w.buf = append(w.buf, w.screen.Project(p))
	}
	rl.DrawLineStrip(w.buf, rlColor(c))
}

func NewApp(s *sim.Simulation, cfg *config.Config) *App {
	w, h := int32(cfg.Render.Width), int32(cfg.Render.Height)
	return &App{
		Sim:     s,
		Screen:  NewScreen(w, h, cfg.Render.Scale),
		Width:   w,
		Height:  h,
		Running: true,
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulation, cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Render.Width), int32(cfg.Render.Height), "pendulums")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	rl.SetExitKey(rl.KeyQ)

	NewApp(s, cfg).RunLoop()
}

func (a *App) RunLoop() {
	r := &windowRenderer{screen: a.Screen}
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw(r)
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	for _, cmd := range pressedCommands(rl.IsKeyPressed) {
		a.Sim.Submit(cmd)
	}

	elapsed := time.Duration(0)
	if a.Running {
		elapsed = time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	}
	a.Stats = a.Sim.Frame(elapsed)
}

func (a *App) Draw(r *windowRenderer) {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.DrawCircleV(a.Screen.Project(r2.Vec{}), 3, ColPivot)
	a.Sim.Render(r)
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	tg := a.Sim.Toggles()
	rl.DrawText("pendulums", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %d live", a.Sim.Registry().Len()), 170, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText(status, a.Width-130, 30, 16, col)

	rl.DrawText(fmt.Sprintf("t %.2fs  E %.1f", a.Sim.Time(), a.Sim.Energy()), 30, 60, 14, ColText)
	rl.DrawText(fmt.Sprintf("trails %s  rods %s  damping %s",
		onOff(tg.DrawTrails), onOff(tg.DrawPendulums), onOff(tg.Damping)), 30, 80, 14, ColText)

	rl.DrawText("[S] SPAWN  [W] SPAWN MANY  [R] RESET  [A] TRAILS  [P] RODS  [D] DAMPING  [SPACE] PAUSE  [Q] QUIT",
		30, a.Height-40, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), a.Width-100, a.Height-40, 14, ColTextDim)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
