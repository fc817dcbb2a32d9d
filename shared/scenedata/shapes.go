// Package scenedata constrói a cena renderizável do CasaVision: shapes
// anotados por categoria semântica e identidade de instância viram arrays
// imutáveis de malha/material consumidos pelo renderizador.
package scenedata

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex é o formato de vértice pronto para renderização.
type Vertex struct {
	Pos      mgl32.Vec3
	Normal   mgl32.Vec3
	Texcoord mgl32.Vec2
}

// Face é um triângulo com um único material.
type Face struct {
	MaterialID int
	Vertices   [3]Vertex
}

// Shape é um objeto da cena como entregue pelo carregador de geometria.
// OriginalIndex é a posição do shape na lista original, antes de qualquer
// filtro: é a única chave válida na tabela de cores de instância e
// permanece estável mesmo depois de filtros e reordenações.
type Shape struct {
	Name          string
	OriginalIndex int
	Faces         []Face
}

// Material é referenciado (nunca copiado) pelas entradas de malha.
// O dono é o SceneSource; o slice Materials não pode ser realocado
// depois que a cena for construída.
type Material struct {
	Name           string
	Diffuse        mgl32.Vec3
	Ambient        mgl32.Vec3
	Dissolve       float32
	DiffuseTexname string
}

// SceneSource é o contrato com o carregador de geometria externo:
// shapes mutáveis/filtráveis e materiais indexáveis por id.
type SceneSource struct {
	Shapes    []Shape
	Materials []Material

	// Total de shapes ANTES de qualquer filtro. As cores de instância
	// são alocadas com este número para que OriginalIndex continue
	// sendo uma chave válida.
	OriginalNumShapes int
}

// LoadSource lê um SceneSource serializado em GOB (formato .cvs).
// A conversão de OBJ/texturas para esse formato é feita por ferramenta
// externa; aqui só entra geometria já triangulada.
func LoadSource(path string) (*SceneSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir cena %s: %w", path, err)
	}
	defer f.Close()

	var src SceneSource
	if err := gob.NewDecoder(f).Decode(&src); err != nil {
		return nil, fmt.Errorf("falha ao decodificar cena %s: %w", path, err)
	}

	// Fontes geradas à mão podem vir sem a contagem original.
	if src.OriginalNumShapes == 0 {
		src.OriginalNumShapes = len(src.Shapes)
		for i := range src.Shapes {
			src.Shapes[i].OriginalIndex = i
		}
	}
	return &src, nil
}

// SaveSource grava um SceneSource em GOB. Usado pelas ferramentas de
// conversão e pelos testes.
func SaveSource(path string, src *SceneSource) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("falha ao criar cena %s: %w", path, err)
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(src)
}

// SplitShapesByMaterial divide shapes cujas faces usam mais de um
// material em um shape por material. Nome e OriginalIndex são
// preservados: as partes continuam sendo o mesmo objeto para fins de
// categoria e cor de instância.
func (s *SceneSource) SplitShapesByMaterial() {
	out := make([]Shape, 0, len(s.Shapes))
	for _, shp := range s.Shapes {
		if !mixedMaterials(shp) {
			out = append(out, shp)
			continue
		}

		byMat := make(map[int][]Face)
		order := make([]int, 0, 4)
		for _, face := range shp.Faces {
			if _, ok := byMat[face.MaterialID]; !ok {
				order = append(order, face.MaterialID)
			}
			byMat[face.MaterialID] = append(byMat[face.MaterialID], face)
		}
		for _, mid := range order {
			out = append(out, Shape{
				Name:          shp.Name,
				OriginalIndex: shp.OriginalIndex,
				Faces:         byMat[mid],
			})
		}
	}
	s.Shapes = out
}

func mixedMaterials(shp Shape) bool {
	if len(shp.Faces) == 0 {
		return false
	}
	for _, face := range shp.Faces[1:] {
		if face.MaterialID != shp.Faces[0].MaterialID {
			return true
		}
	}
	return false
}

// SortByTransparent reordena os shapes de forma estável: opacos
// primeiro, transparentes por último, para que o blending funcione na
// ordem de desenho estabelecida pelo builder. hasAlpha informa se a
// textura de um material tem canal alfa; pode ser nil.
func (s *SceneSource) SortByTransparent(hasAlpha func(texname string) bool) {
	transparent := func(shp Shape) bool {
		if len(shp.Faces) == 0 {
			return false
		}
		mid := shp.Faces[0].MaterialID
		if mid < 0 || mid >= len(s.Materials) {
			return false
		}
		m := s.Materials[mid]
		if m.Dissolve < 1.0 {
			return true
		}
		return hasAlpha != nil && m.DiffuseTexname != "" && hasAlpha(m.DiffuseTexname)
	}

	sort.SliceStable(s.Shapes, func(i, j int) bool {
		return !transparent(s.Shapes[i]) && transparent(s.Shapes[j])
	})
}
