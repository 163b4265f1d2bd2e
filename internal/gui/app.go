// Package gui renders the presence blob in a resizable raylib window. Each
// frame runs one scheduler iteration: resize detection, preset resolution
// from the phase cell, a smoother plus integrator step, and a two-pass draw
// (discs offscreen, then the blur+contrast shader over the whole surface).
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/aura/internal/audio"
	"github.com/san-kum/aura/internal/config"
	"github.com/san-kum/aura/internal/engine"
	"github.com/san-kum/aura/internal/feed"
	"github.com/san-kum/aura/internal/phase"
)

var (
	colBg   = rl.NewColor(8, 8, 12, 255)
	colBlob = rl.NewColor(150, 170, 255, 255)
	colText = rl.NewColor(140, 140, 150, 255)
	colDim  = rl.NewColor(60, 60, 70, 255)
)

type App struct {
	engine *engine.Engine
	cell   *feed.Cell
	pad    *audio.Pad

	shader   rl.Shader
	resLoc   int32
	target   rl.RenderTexture2D
	width    int
	height   int
	showHUD  bool
	thinking bool
	phase    string
}

// Run opens the window and drives the animation until the window closes.
// The pad may be nil.
func Run(cfg *config.Config, cell *feed.Cell, pad *audio.Pad) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "aura")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	app := &App{
		engine: engine.New(cfg.Particles.Count, cfg.Particles.Seed),
		cell:   cell,
		pad:    pad,
		shader: rl.LoadShaderFromMemory("", metaballFS),
	}
	app.resLoc = rl.GetShaderLocation(app.shader, "resolution")
	defer rl.UnloadShader(app.shader)
	defer func() {
		if app.target.ID > 0 {
			rl.UnloadRenderTexture(app.target)
		}
	}()

	for !rl.WindowShouldClose() {
		app.update()
		app.draw()
	}
}

func (a *App) update() {
	if rl.IsKeyPressed(rl.KeyD) {
		a.showHUD = !a.showHUD
	}

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w != a.width || h != a.height {
		a.width, a.height = w, h
		if a.target.ID > 0 {
			rl.UnloadRenderTexture(a.target)
			a.target = rl.RenderTexture2D{}
		}
		if w > 0 && h > 0 {
			a.target = rl.LoadRenderTexture(int32(w), int32(h))
			rl.SetShaderValue(a.shader, a.resLoc,
				[]float32{float32(w), float32(h)}, rl.ShaderUniformVec2)
		}
	}
	a.engine.Resize(float64(w), float64(h))

	a.phase, a.thinking = a.cell.Phase()
	target := phase.PresetFor(a.phase)
	a.engine.Step(target, float64(rl.GetFrameTime()))

	if a.pad != nil {
		a.pad.SetParams(a.engine.Params())
	}
}

func (a *App) draw() {
	if a.target.ID == 0 {
		// No usable surface; try again next frame.
		rl.BeginDrawing()
		rl.ClearBackground(colBg)
		rl.EndDrawing()
		return
	}

	rl.BeginTextureMode(a.target)
	rl.ClearBackground(rl.Blank)
	for i, p := range a.engine.Particles() {
		rl.DrawCircleV(rl.NewVector2(float32(p.X), float32(p.Y)),
			float32(a.engine.Radius(i)), colBlob)
	}
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	rl.BeginShaderMode(a.shader)
	rl.DrawTextureRec(a.target.Texture,
		rl.NewRectangle(0, 0, float32(a.width), -float32(a.height)),
		rl.NewVector2(0, 0), rl.White)
	rl.EndShaderMode()

	caption := a.phase
	if a.thinking {
		caption += " …"
	}
	rl.DrawText(caption, 16, int32(a.height)-28, 16, colText)

	if a.showHUD {
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	p := a.engine.Params()
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 16, 16, 14, colDim)
	lines := []string{
		fmt.Sprintf("speed     %.4f", p.Speed),
		fmt.Sprintf("cohesion  %.4f", p.Cohesion),
		fmt.Sprintf("separate  %.4f", p.Separation),
		fmt.Sprintf("chaos     %.4f", p.Chaos),
		fmt.Sprintf("pulse     %.4f", p.Pulse),
		fmt.Sprintf("radius    %.4f", p.RadiusScale),
		fmt.Sprintf("swirl     %.4f", p.Swirl),
		fmt.Sprintf("spread    %.1f", a.engine.Spread()),
		fmt.Sprintf("bounces   %d", a.engine.Bounces()),
	}
	for i, line := range lines {
		rl.DrawText(line, 16, int32(36+i*18), 14, colDim)
	}
}
