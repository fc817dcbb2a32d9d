package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do CasaVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	TargetFPS    int32  `json:"target_fps"`

	// Cena
	ScenePath          string   `json:"scene_path"`
	TextureDir         string   `json:"texture_dir"`
	ModelCategoryFile  string   `json:"model_category_file"`
	SemanticColorFile  string   `json:"semantic_color_file"`
	ModelBlacklistFile string   `json:"model_blacklist_file"`
	ExcludedCategories []string `json:"excluded_categories"`

	// Renderização
	RenderMode string  `json:"render_mode"` // modo inicial: rgb, semantic, instance, depth, invdepth
	MinDepth   float32 `json:"min_depth"`   // override do plano near para o empacotamento de 16 bits

	// Acima deste número de cores na tabela semântica, o resolvedor
	// passa a usar classes fine-grained.
	FineGrainedThreshold int `json:"fine_grained_threshold"`

	// Semente do shuffle das cores de instância (0 = derivada do relógio).
	ColorSeed int64 `json:"color_seed"`

	// Servidor de frames
	ListenAddr string `json:"listen_addr"`

	// Catálogo de cenas (SQLite)
	CatalogPath string `json:"catalog_path"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "CasaVision",
		TargetFPS:    60,

		ScenePath:          "scenes/house.cvs",
		TextureDir:         "scenes/textures",
		ModelCategoryFile:  "scenes/ModelCategoryMapping.csv",
		SemanticColorFile:  "scenes/colormap_coarse.csv",
		ModelBlacklistFile: "",
		ExcludedCategories: []string{"person"},

		RenderMode: "rgb",
		MinDepth:   0.1,

		FineGrainedThreshold: 128,
		ColorSeed:            0,

		ListenAddr:  ":8080",
		CatalogPath: "saves/catalogo.db",

		ShowDebugInfo: true,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir ou estiver corrompido, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save grava as configurações atuais em JSON ao lado do executável.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
