package app

import (
	"fmt"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"CasaVision/shared/util"
)

// draw renderiza um frame completo.
func (a *App) draw() {
	rl.BeginDrawing()

	bg := a.scene.Background
	rl.ClearBackground(rl.NewColor(
		uint8(bg.X()*255), uint8(bg.Y()*255), uint8(bg.Z()*255), 255))

	rl.BeginMode3D(a.Cam.RLCamera)
	if err := a.renderer.Draw(a.Cam.RLCamera); err != nil {
		// Draw falho é reportado, não repetido.
		log.Printf("[App] Falha no frame: %v", err)
	}
	rl.EndMode3D()

	a.drawHUD()

	rl.EndDrawing()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	if !a.Config.ShowDebugInfo {
		return
	}

	width := int32(300)
	height := int32(150)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	rl.DrawText(fmt.Sprintf("Modo: %s (teclas 1-5)", a.renderer.Mode()), x+10, y+40, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Malhas: %d", len(a.scene.Entries)), x+10, y+62, 14, rl.LightGray)

	bmin, bmax := a.scene.BoxMin, a.scene.BoxMax
	rl.DrawText(fmt.Sprintf("Box: (%.1f %.1f %.1f)", bmin.X(), bmin.Y(), bmin.Z()), x+10, y+82, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("     (%.1f %.1f %.1f)", bmax.X(), bmax.Y(), bmax.Z()), x+10, y+98, 12, rl.Gray)

	cam := a.Cam.RLCamera
	dist := math.Sqrt(float64(util.DistSq(cam.Position, cam.Target)))
	rl.DrawText(fmt.Sprintf("Cam: %.1f m do alvo", dist), x+10, y+116, 12, rl.Gray)
}
