package render

import (
	"log"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"CasaVision/shared/scenedata"
)

// TextureStore é o dono dos handles de textura na GPU. A cena só
// empresta referências: Activate/Deactivate precisam ser pareados.
type TextureStore struct {
	dir      string
	textures map[string]rl.Texture2D
	active   bool
}

// NewTextureStore cria o store apontando para o diretório base das
// texturas da cena.
func NewTextureStore(dir string) *TextureStore {
	return &TextureStore{
		dir:      dir,
		textures: make(map[string]rl.Texture2D),
	}
}

// Activate sobe para a GPU toda textura difusa referenciada pelos
// materiais. Textura ausente é logada e o material cai na variante sem
// textura, não é fatal.
func (s *TextureStore) Activate(materials []scenedata.Material) {
	if s.active {
		return
	}
	for i := range materials {
		name := materials[i].DiffuseTexname
		if name == "" {
			continue
		}
		if _, ok := s.textures[name]; ok {
			continue
		}
		tex := rl.LoadTexture(filepath.Join(s.dir, name))
		if tex.ID == 0 {
			log.Printf("[Texturas] Falha ao carregar textura %s", name)
			continue
		}
		s.textures[name] = tex
	}
	s.active = true
	log.Printf("[Texturas] %d texturas ativas", len(s.textures))
}

// Deactivate libera todos os handles de GPU.
func (s *TextureStore) Deactivate() {
	if !s.active {
		return
	}
	for name, tex := range s.textures {
		rl.UnloadTexture(tex)
		delete(s.textures, name)
	}
	s.active = false
}

// Get devolve o handle da textura, se carregada.
func (s *TextureStore) Get(name string) (rl.Texture2D, bool) {
	tex, ok := s.textures[name]
	return tex, ok
}

// HasAlphaChannel inspeciona o arquivo da textura na CPU e informa se o
// formato carrega canal alfa. Nada sobe para a GPU; arquivo ilegível
// conta como opaco. Alimenta a ordenação opacos-primeiro da cena.
func (s *TextureStore) HasAlphaChannel(name string) bool {
	img := rl.LoadImage(filepath.Join(s.dir, name))
	if img == nil || img.Data == nil {
		return false
	}
	defer rl.UnloadImage(img)

	switch img.Format {
	case rl.UncompressedGrayAlpha,
		rl.UncompressedR5g5b5a1,
		rl.UncompressedR4g4b4a4,
		rl.UncompressedR8g8b8a8,
		rl.UncompressedR32g32b32a32,
		rl.CompressedDxt1Rgba,
		rl.CompressedDxt3Rgba,
		rl.CompressedDxt5Rgba,
		rl.CompressedEtc2EacRgba,
		rl.CompressedPvrtRgba,
		rl.CompressedAstc4x4Rgba,
		rl.CompressedAstc8x8Rgba:
		return true
	}
	return false
}
