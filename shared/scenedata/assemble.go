package scenedata

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// AssembleOptions parametriza a montagem completa de uma cena.
type AssembleOptions struct {
	ScenePath          string
	ModelCategoryFile  string
	SemanticColorFile  string
	ModelBlacklistFile string   // vazio = sem blacklist
	ExcludedCategories []string // ex.: {"person"}

	FineGrainedThreshold int
	ColorSeed            int64 // 0 = derivada do relógio

	// hasAlpha do SortByTransparent; pode ser nil.
	TextureHasAlpha func(texname string) bool
}

// Assemble executa o pipeline completo: carrega a fonte, aplica
// blacklist e filtro de categorias, normaliza (split por material,
// opacos primeiro), aloca as cores de instância com a contagem original
// e constrói a cena. Roda uma única vez, antes de qualquer frame.
func Assemble(opts AssembleOptions) (*Scene, *SceneSource, error) {
	src, err := LoadSource(opts.ScenePath)
	if err != nil {
		return nil, nil, err
	}

	index, err := LoadModelIndex(opts.ModelCategoryFile)
	if err != nil {
		return nil, nil, err
	}
	table, err := LoadColorTable(opts.SemanticColorFile)
	if err != nil {
		return nil, nil, err
	}
	resolver := NewResolver(index, table, opts.FineGrainedThreshold)

	// Blacklist por id de modelo, antes de qualquer outro processamento.
	if opts.ModelBlacklistFile != "" {
		src.Shapes = FilterBlacklist(src.Shapes, opts.ModelBlacklistFile)
	}
	src.Shapes = resolver.FilterCategories(src.Shapes, opts.ExcludedCategories)

	src.SplitShapesByMaterial()
	src.SortByTransparent(opts.TextureHasAlpha)

	log.Printf("[Cena] %s: %d shapes retidos de %d originais, %d materiais",
		opts.ScenePath, len(src.Shapes), src.OriginalNumShapes, len(src.Materials))

	seed := opts.ColorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	instanceColors := UniformSampledColors(src.OriginalNumShapes, rng)

	scene, err := Build(src, resolver, instanceColors)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao construir cena %s: %w", opts.ScenePath, err)
	}
	return scene, src, nil
}
