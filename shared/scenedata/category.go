package scenedata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Granularity define a resolução das classes semânticas.
type Granularity int

const (
	GranularityCoarse Granularity = iota
	GranularityFine
)

// modelPrefix marca shapes que referenciam um modelo do catálogo.
const modelPrefix = "Model#"

// groundName é o marcador literal do plano de chão.
const groundName = "Ground"

// ColorTable mapeia nomes de categoria para cores de rótulo fixas,
// carregadas de um CSV "name,r,g,b" (canais 0-255).
type ColorTable struct {
	colors     map[string]mgl32.Vec3
	background mgl32.Vec3
}

// LoadColorTable lê a tabela de cores semânticas.
func LoadColorTable(path string) (*ColorTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir tabela de cores %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("falha ao parsear tabela de cores %s: %w", path, err)
	}

	t := &ColorTable{colors: make(map[string]mgl32.Vec3, len(records))}
	for _, rec := range records {
		var ch [3]float32
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(rec[i+1]))
			if err != nil {
				return nil, fmt.Errorf("valor de cor inválido em %s (%q): %w", path, rec[0], err)
			}
			ch[i] = float32(v) / 255.0
		}
		t.colors[rec[0]] = mgl32.Vec3{ch[0], ch[1], ch[2]}
	}

	// A cor de fundo vem da entrada "Background" quando existir;
	// caso contrário é preto.
	if bg, ok := t.colors["Background"]; ok {
		t.background = bg
	}

	log.Printf("[Categoria] Tabela de cores carregada: %d categorias", len(t.colors))
	return t, nil
}

// Color devolve a cor da categoria e se ela existe na tabela.
func (t *ColorTable) Color(category string) (mgl32.Vec3, bool) {
	c, ok := t.colors[category]
	return c, ok
}

// BackgroundColor devolve a cor de fundo da tabela.
func (t *ColorTable) BackgroundColor() mgl32.Vec3 {
	return t.background
}

// Len devolve o número de categorias distintas na tabela.
func (t *ColorTable) Len() int {
	return len(t.colors)
}

// ModelIndex mapeia ids de modelo para categorias coarse e fine,
// carregado do CSV de catálogo (colunas model_id, coarse_grained_class
// e fine_grained_class, identificadas pelo cabeçalho).
type ModelIndex struct {
	coarse map[string]string
	fine   map[string]string
}

// LoadModelIndex lê o índice modelo→categoria.
func LoadModelIndex(path string) (*ModelIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir índice de modelos %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("falha ao parsear índice de modelos %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("índice de modelos %s vazio", path)
	}

	idCol, coarseCol, fineCol := -1, -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case "model_id":
			idCol = i
		case "coarse_grained_class":
			coarseCol = i
		case "fine_grained_class":
			fineCol = i
		}
	}
	if idCol < 0 || coarseCol < 0 || fineCol < 0 {
		return nil, fmt.Errorf("índice de modelos %s sem as colunas esperadas", path)
	}

	ix := &ModelIndex{
		coarse: make(map[string]string, len(records)-1),
		fine:   make(map[string]string, len(records)-1),
	}
	for _, rec := range records[1:] {
		id := rec[idCol]
		ix.coarse[id] = rec[coarseCol]
		ix.fine[id] = rec[fineCol]
	}

	log.Printf("[Categoria] Índice de modelos carregado: %d modelos", len(ix.coarse))
	return ix, nil
}

// Category devolve a categoria do modelo na granularidade pedida.
func (ix *ModelIndex) Category(modelID string, g Granularity) (string, bool) {
	if g == GranularityFine {
		c, ok := ix.fine[modelID]
		return c, ok
	}
	c, ok := ix.coarse[modelID]
	return c, ok
}

// Resolver traduz nomes de shape em categorias semânticas e cores de
// rótulo, com fallback não-fatal para a cor de fundo.
type Resolver struct {
	Index       *ModelIndex
	Table       *ColorTable
	Granularity Granularity
}

// NewResolver monta o resolvedor. Tabelas com mais categorias que
// fineThreshold forçam a granularidade fine.
func NewResolver(ix *ModelIndex, table *ColorTable, fineThreshold int) *Resolver {
	r := &Resolver{Index: ix, Table: table, Granularity: GranularityCoarse}
	if table.Len() > fineThreshold {
		r.Granularity = GranularityFine
		log.Printf("[Categoria] Tabela com %d cores (> %d): usando classes fine-grained", table.Len(), fineThreshold)
	}
	return r
}

// ResolveCategory aplica as regras de precedência sobre o nome do shape:
// prefixo Model# → lookup no índice; "Ground" literal → Ground; nome com
// separador '#' → prefixo como categoria, com WallInside/WallOutside
// colapsados em Wall. Qualquer outro nome falha (ok=false).
func (r *Resolver) ResolveCategory(name string) (string, bool) {
	if strings.HasPrefix(name, modelPrefix) {
		modelID := name[len(modelPrefix):]
		return r.Index.Category(modelID, r.Granularity)
	}

	if name == groundName {
		return groundName, true
	}

	if split := strings.IndexByte(name, '#'); split >= 0 {
		klass := name[:split]
		if klass == "WallInside" || klass == "WallOutside" {
			klass = "Wall"
		}
		return klass, true
	}

	return "", false
}

// LabelColor resolve a cor de rótulo de um shape. Nomes ou categorias
// irresolvíveis caem na cor de fundo e são logados; a renderização
// continua com coloração best-effort.
func (r *Resolver) LabelColor(name string) mgl32.Vec3 {
	klass, ok := r.ResolveCategory(name)
	if !ok {
		log.Printf("[Categoria] Falha ao resolver categoria do shape %q", name)
		return r.Table.BackgroundColor()
	}

	color, ok := r.Table.Color(klass)
	if !ok {
		log.Printf("[Categoria] Categoria %q (shape %q) sem cor na tabela", klass, name)
		return r.Table.BackgroundColor()
	}
	return color
}

// FilterCategories remove os shapes cuja categoria resolvida está em
// excluded (ex.: "person"), antes da conversão de geometria, para que
// objetos excluídos não consumam slots de vértice/material.
func (r *Resolver) FilterCategories(shapes []Shape, excluded []string) []Shape {
	if len(excluded) == 0 {
		return shapes
	}
	skip := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		skip[e] = true
	}

	out := shapes[:0]
	removed := 0
	for _, shp := range shapes {
		if klass, ok := r.ResolveCategory(shp.Name); ok && skip[klass] {
			removed++
			continue
		}
		out = append(out, shp)
	}
	if removed > 0 {
		log.Printf("[Categoria] %d shapes removidos por categoria excluída", removed)
	}
	return out
}

// FilterBlacklist remove shapes cujo nome casa com "Model#<id>" para
// cada id listado no arquivo (um por linha). Arquivo ilegível é tratado
// como blacklist vazia, apenas logado.
func FilterBlacklist(shapes []Shape, path string) []Shape {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[Categoria] Não foi possível abrir blacklist %s: %v", path, err)
		return shapes
	}
	defer f.Close()

	blocked := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id != "" {
			blocked[modelPrefix+id] = true
		}
	}
	if err := sc.Err(); err != nil {
		log.Printf("[Categoria] Erro ao ler blacklist %s: %v", path, err)
		return shapes
	}

	out := shapes[:0]
	for _, shp := range shapes {
		if blocked[shp.Name] {
			continue
		}
		out = append(out, shp)
	}
	return out
}
