package scenedata

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Erros de precondição do builder. Indicam geometria de entrada
// malformada, não condição recuperável em runtime.
var (
	// ErrNoFaces indica shape sem nenhuma face.
	ErrNoFaces = errors.New("shape sem faces")
	// ErrInconsistentMaterial indica shape com faces de materiais
	// diferentes; o carregador deve ter aplicado SplitShapesByMaterial.
	ErrInconsistentMaterial = errors.New("shape com material inconsistente entre faces")
	// ErrMaterialOutOfRange indica face referenciando material inexistente.
	ErrMaterialOutOfRange = errors.New("id de material fora do intervalo")
	// ErrMissingInstanceColor indica OriginalIndex sem cor alocada; a
	// alocação deve usar a contagem de shapes ANTES dos filtros.
	ErrMissingInstanceColor = errors.New("cor de instância ausente para original_index")
)

// GeometryData contém os buffers de vértices achatados de uma malha,
// prontos para upload na GPU.
type GeometryData struct {
	Vertices  []float32 // xyz intercalado
	Normals   []float32
	Texcoords []float32
}

// VertexCount devolve o número de vértices no buffer.
func (g *GeometryData) VertexCount() int {
	return len(g.Vertices) / 3
}

// MeshEntry descreve uma malha retida: material, cor de rótulo
// semântico e cor de instância única. O índice i em Scene.Entries
// corresponde 1:1 ao índice i em Scene.Geometry; dessincronizar os
// dois arrays é bug de corretude.
type MeshEntry struct {
	MaterialID    int
	LabelColor    mgl32.Vec3
	InstanceColor mgl32.Vec3

	// Reservado para uso futuro (handle de GPU por entrada).
	Reserved uint64

	// Referência ao material do SceneSource; nunca uma cópia.
	Material *Material
}

// Scene é o resultado imutável do builder. Depois de construída, só o
// modo de renderização e o estado de ativação de GPU mudam por frame.
type Scene struct {
	Entries  []MeshEntry
	Geometry []GeometryData

	Background mgl32.Vec3
	BoxMin     mgl32.Vec3
	BoxMax     mgl32.Vec3

	// Histograma categoria→shapes, usado pelo catálogo de cenas.
	Categories map[string]int
}

// Build converte os shapes filtrados do src, em ordem, nos arrays
// finais de malha/geometria. instanceColors deve ter sido alocado com
// src.OriginalNumShapes entradas; o slice de shapes do src é liberado
// ao final para devolver memória.
func Build(src *SceneSource, resolver *Resolver, instanceColors []mgl32.Vec3) (*Scene, error) {
	scene := &Scene{
		Entries:    make([]MeshEntry, 0, len(src.Shapes)),
		Geometry:   make([]GeometryData, 0, len(src.Shapes)),
		Background: resolver.Table.BackgroundColor(),
		BoxMin:     splatVec3(math.MaxFloat32),
		BoxMax:     splatVec3(-math.MaxFloat32),
		Categories: make(map[string]int),
	}

	for i, shp := range src.Shapes {
		if len(shp.Faces) == 0 {
			return nil, fmt.Errorf("shape %q (%d): %w", shp.Name, i, ErrNoFaces)
		}

		mid := shp.Faces[0].MaterialID
		for _, face := range shp.Faces[1:] {
			if face.MaterialID != mid {
				return nil, fmt.Errorf("shape %q (%d): %w", shp.Name, i, ErrInconsistentMaterial)
			}
		}
		if mid < 0 || mid >= len(src.Materials) {
			return nil, fmt.Errorf("shape %q (%d), material %d: %w", shp.Name, i, mid, ErrMaterialOutOfRange)
		}
		if shp.OriginalIndex < 0 || shp.OriginalIndex >= len(instanceColors) {
			return nil, fmt.Errorf("shape %q (%d), original_index %d: %w", shp.Name, i, shp.OriginalIndex, ErrMissingInstanceColor)
		}

		labelColor := resolver.LabelColor(shp.Name)
		if klass, ok := resolver.ResolveCategory(shp.Name); ok {
			scene.Categories[klass]++
		}

		geo := GeometryData{
			Vertices:  make([]float32, 0, len(shp.Faces)*9),
			Normals:   make([]float32, 0, len(shp.Faces)*9),
			Texcoords: make([]float32, 0, len(shp.Faces)*6),
		}
		for _, face := range shp.Faces {
			for _, v := range face.Vertices {
				geo.Vertices = append(geo.Vertices, v.Pos.X(), v.Pos.Y(), v.Pos.Z())
				geo.Normals = append(geo.Normals, v.Normal.X(), v.Normal.Y(), v.Normal.Z())
				geo.Texcoords = append(geo.Texcoords, v.Texcoord.X(), v.Texcoord.Y())

				scene.BoxMin = vecMin(scene.BoxMin, v.Pos)
				scene.BoxMax = vecMax(scene.BoxMax, v.Pos)
			}
		}

		scene.Entries = append(scene.Entries, MeshEntry{
			MaterialID:    mid,
			LabelColor:    labelColor,
			InstanceColor: instanceColors[shp.OriginalIndex],
			Reserved:      0,
			Material:      &src.Materials[mid],
		})
		scene.Geometry = append(scene.Geometry, geo)
	}

	if len(scene.Entries) != len(scene.Geometry) {
		return nil, fmt.Errorf("builder produziu %d entradas e %d geometrias", len(scene.Entries), len(scene.Geometry))
	}

	// Shapes brutos não são mais necessários; devolve a memória.
	src.Shapes = nil

	return scene, nil
}

// Center devolve o centro do bounding box da cena.
func (s *Scene) Center() mgl32.Vec3 {
	return s.BoxMin.Add(s.BoxMax).Mul(0.5)
}

// Extent devolve a maior dimensão do bounding box.
func (s *Scene) Extent() float32 {
	d := s.BoxMax.Sub(s.BoxMin)
	return max(d.X(), max(d.Y(), d.Z()))
}

func splatVec3(v float32) mgl32.Vec3 {
	return mgl32.Vec3{v, v, v}
}

func vecMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a.X(), b.X()), min(a.Y(), b.Y()), min(a.Z(), b.Z())}
}

func vecMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a.X(), b.X()), max(a.Y(), b.Y()), max(a.Z(), b.Z())}
}
