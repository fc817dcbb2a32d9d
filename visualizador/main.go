package main

import (
	"log"
	"os"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"CasaVision/shared/config"
	"CasaVision/shared/render"
	"CasaVision/visualizador/internal/app"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Iniciando CasaVision Visualizador")
	log.Printf("Usando GoLang: [%s]", runtime.Version())
}

func main() {
	cfg := config.Load()

	rl.InitWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle)
	defer rl.CloseWindow()
	rl.SetTargetFPS(cfg.TargetFPS)

	// Planos de recorte precisam casar com o contrato do shader.
	rl.SetClipPlanes(float64(render.Near), float64(render.Far))

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("[Main] Falha ao inicializar: %v", err)
	}
	defer a.Shutdown()

	a.Run()
}
