package scenedata

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SceneRecord é o esquema do catálogo para uma cena construída.
type SceneRecord struct {
	ID         string `gorm:"primaryKey"` // caminho do arquivo da cena
	NumShapes  int    // contagem original, antes dos filtros
	NumEntries int    // entradas retidas após filtros
	MinX       float32
	MinY       float32
	MinZ       float32
	MaxX       float32
	MaxY       float32
	MaxZ       float32
	UpdatedAt  time.Time
}

// CategoryCount guarda o histograma categoria→shapes de uma cena.
type CategoryCount struct {
	SceneID  string `gorm:"primaryKey;autoIncrement:false"`
	Category string `gorm:"primaryKey"`
	Shapes   int
}

// Catalog é o catálogo SQLite de cenas já construídas. Falhas aqui são
// não-fatais para a renderização: o catálogo só alimenta o navegador de
// datasets e o HUD.
type Catalog struct {
	DB *gorm.DB
}

// OpenCatalog abre (ou cria) o banco do catálogo e roda as migrações.
func OpenCatalog(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Logger silencioso em produção.
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&SceneRecord{}, &CategoryCount{}); err != nil {
		return nil, fmt.Errorf("falha na migração do catálogo: %w", err)
	}

	log.Printf("[Catalogo] Banco de dados SQLite aberto: %s", path)
	return &Catalog{DB: db}, nil
}

// SaveScene grava (ou atualiza) os metadados de uma cena construída.
func (c *Catalog) SaveScene(id string, numShapes int, scene *Scene) error {
	if c == nil || c.DB == nil {
		return fmt.Errorf("catálogo não inicializado")
	}

	rec := SceneRecord{
		ID:         id,
		NumShapes:  numShapes,
		NumEntries: len(scene.Entries),
		MinX:       scene.BoxMin.X(),
		MinY:       scene.BoxMin.Y(),
		MinZ:       scene.BoxMin.Z(),
		MaxX:       scene.BoxMax.X(),
		MaxY:       scene.BoxMax.Y(),
		MaxZ:       scene.BoxMax.Z(),
	}
	if err := c.DB.Save(&rec).Error; err != nil {
		return fmt.Errorf("falha ao salvar cena %s: %w", id, err)
	}

	// Histograma é regravado por inteiro a cada build.
	if err := c.DB.Where("scene_id = ?", id).Delete(&CategoryCount{}).Error; err != nil {
		return fmt.Errorf("falha ao limpar histograma de %s: %w", id, err)
	}
	for klass, n := range scene.Categories {
		cc := CategoryCount{SceneID: id, Category: klass, Shapes: n}
		if err := c.DB.Create(&cc).Error; err != nil {
			return fmt.Errorf("falha ao salvar histograma de %s: %w", id, err)
		}
	}
	return nil
}

// LoadScene lê os metadados de uma cena do catálogo.
func (c *Catalog) LoadScene(id string) (*SceneRecord, []CategoryCount, error) {
	if c == nil || c.DB == nil {
		return nil, nil, fmt.Errorf("catálogo não inicializado")
	}

	var rec SceneRecord
	if err := c.DB.First(&rec, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}

	var counts []CategoryCount
	if err := c.DB.Where("scene_id = ?", id).Find(&counts).Error; err != nil {
		return nil, nil, err
	}
	return &rec, counts, nil
}

// Close fecha a conexão com o banco.
func (c *Catalog) Close() {
	if c == nil || c.DB == nil {
		return
	}
	if db, err := c.DB.DB(); err == nil {
		db.Close()
	}
}
