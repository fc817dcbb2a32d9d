package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"CasaVision/shared/render"
)

// updateInput processa entradas de teclado gerais. A troca de modo
// acontece entre frames e não reconstrói nada da cena.
func (a *App) updateInput() {
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		a.setMode(render.ModeRGB)
	case rl.IsKeyPressed(rl.KeyTwo):
		a.setMode(render.ModeSemantic)
	case rl.IsKeyPressed(rl.KeyThree):
		a.setMode(render.ModeInstance)
	case rl.IsKeyPressed(rl.KeyFour):
		a.setMode(render.ModeDepth)
	case rl.IsKeyPressed(rl.KeyFive):
		a.setMode(render.ModeInvDepth)
	}

	// Toggle debug info
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}
}

func (a *App) setMode(mode render.RenderMode) {
	if a.renderer.Mode() == mode {
		return
	}
	a.renderer.SetMode(mode)
	log.Printf("[App] Modo de renderização: %s", mode)
}
