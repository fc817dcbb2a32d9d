package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"CasaVision/shared/config"
	"CasaVision/shared/render"
	"CasaVision/shared/scenedata"
	"CasaVision/visualizador/internal/camera"
)

// App é o visualizador interativo do CasaVision: uma cena construída
// uma vez, renderizada a cada frame no modo selecionado pelo usuário.
type App struct {
	Config *config.Config

	Cam *camera.CameraController

	scene    *scenedata.Scene
	source   *scenedata.SceneSource
	textures *render.TextureStore
	renderer *render.SceneRenderer
	catalog  *scenedata.Catalog
}

// New monta a cena e o renderizador. A janela precisa existir antes
// (shader e texturas sobem para a GPU aqui).
func New(cfg *config.Config) (*App, error) {
	mode, err := render.ParseMode(cfg.RenderMode)
	if err != nil {
		return nil, err
	}

	textures := render.NewTextureStore(cfg.TextureDir)

	scene, src, err := scenedata.Assemble(scenedata.AssembleOptions{
		ScenePath:            cfg.ScenePath,
		ModelCategoryFile:    cfg.ModelCategoryFile,
		SemanticColorFile:    cfg.SemanticColorFile,
		ModelBlacklistFile:   cfg.ModelBlacklistFile,
		ExcludedCategories:   cfg.ExcludedCategories,
		FineGrainedThreshold: cfg.FineGrainedThreshold,
		ColorSeed:            cfg.ColorSeed,
		TextureHasAlpha:      textures.HasAlphaChannel,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		scene:    scene,
		source:   src,
		textures: textures,
	}

	// Catálogo é best-effort: falha não impede a renderização.
	if catalog, err := scenedata.OpenCatalog(cfg.CatalogPath); err != nil {
		log.Printf("[App] Catálogo indisponível: %v", err)
	} else {
		a.catalog = catalog
		if err := catalog.SaveScene(cfg.ScenePath, src.OriginalNumShapes, scene); err != nil {
			log.Printf("[App] Falha ao catalogar cena: %v", err)
		}
	}

	a.renderer = render.NewSceneRenderer(scene, textures, mode, cfg.MinDepth)
	if err := a.renderer.Activate(src.Materials); err != nil {
		return nil, err
	}

	center := scene.Center()
	a.Cam = camera.New(rl.Vector3{X: center.X(), Y: center.Y(), Z: center.Z()}, scene.Extent())

	log.Printf("[App] Cena pronta: %d malhas, modo inicial %s", len(scene.Entries), mode)
	return a, nil
}

// Run roda o loop principal até a janela fechar.
func (a *App) Run() {
	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}
}

// Shutdown libera GPU e fecha o catálogo.
func (a *App) Shutdown() {
	a.renderer.Deactivate()
	a.renderer.Unload()
	a.catalog.Close()
}

// update processa input e câmera de um frame.
func (a *App) update() {
	dt := rl.GetFrameTime()
	a.updateInput()
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)
}
