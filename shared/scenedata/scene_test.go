package scenedata

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFace(mid int, verts ...mgl32.Vec3) Face {
	f := Face{MaterialID: mid}
	for i := 0; i < 3; i++ {
		f.Vertices[i] = Vertex{Pos: verts[i], Normal: mgl32.Vec3{0, 1, 0}}
	}
	return f
}

func testSource() *SceneSource {
	// Três shapes originais: A (chair), B (person, será filtrado), C (Wall).
	return &SceneSource{
		Shapes: []Shape{
			{Name: "Model#42", OriginalIndex: 0, Faces: []Face{
				testFace(0, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),
			}},
			{Name: "person#1", OriginalIndex: 1, Faces: []Face{
				testFace(1, mgl32.Vec3{5, 5, 5}, mgl32.Vec3{6, 5, 5}, mgl32.Vec3{5, 6, 5}),
			}},
			{Name: "WallInside#9", OriginalIndex: 2, Faces: []Face{
				testFace(1, mgl32.Vec3{-1, 0, 2}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 3, 2}),
			}},
		},
		Materials: []Material{
			{Name: "madeira", Diffuse: mgl32.Vec3{0.6, 0.4, 0.2}, Dissolve: 1},
			{Name: "gesso", Diffuse: mgl32.Vec3{0.9, 0.9, 0.9}, Dissolve: 1},
		},
		OriginalNumShapes: 3,
	}
}

func TestBuildOrderingAfterFilter(t *testing.T) {
	r := testResolver()
	src := testSource()

	// Aloca com a contagem ORIGINAL, antes do filtro.
	instanceColors := UniformSampledColors(src.OriginalNumShapes, rand.New(rand.NewSource(7)))
	colorOfB := instanceColors[1]
	colorOfC := instanceColors[2]

	src.Shapes = r.FilterCategories(src.Shapes, []string{"person"})

	scene, err := Build(src, r, instanceColors)
	if err != nil {
		t.Fatal(err)
	}

	if len(scene.Entries) != 2 {
		t.Fatalf("esperava 2 entradas, veio %d", len(scene.Entries))
	}
	if len(scene.Geometry) != len(scene.Entries) {
		t.Fatalf("entradas e geometrias dessincronizadas: %d != %d", len(scene.Entries), len(scene.Geometry))
	}

	// Ordem [A, C] com os materiais originais referenciados.
	if scene.Entries[0].MaterialID != 0 || scene.Entries[0].Material != &src.Materials[0] {
		t.Errorf("entrada 0 não referencia o material de A")
	}
	if scene.Entries[1].MaterialID != 1 || scene.Entries[1].Material != &src.Materials[1] {
		t.Errorf("entrada 1 não referencia o material de C")
	}

	// Cor de instância indexada por OriginalIndex, nunca recalculada:
	// C sobreviveu com original_index 2 e fica com a cor 2 da alocação
	// ORIGINAL (não a cor 1 de uma realocação pós-filtro).
	if scene.Entries[1].InstanceColor != colorOfC {
		t.Errorf("cor de instância de C = %v, esperava %v", scene.Entries[1].InstanceColor, colorOfC)
	}
	if scene.Entries[1].InstanceColor == colorOfB {
		t.Errorf("cor de instância de C herdou a cor do shape filtrado")
	}

	// Shapes brutos liberados após a conversão.
	if src.Shapes != nil {
		t.Error("shapes brutos não foram liberados após o build")
	}
}

func TestBuildBoundingBox(t *testing.T) {
	r := testResolver()
	src := testSource()
	colors := UniformSampledColors(src.OriginalNumShapes, rand.New(rand.NewSource(7)))

	scene, err := Build(src, r, colors)
	if err != nil {
		t.Fatal(err)
	}

	wantMin := mgl32.Vec3{-1, 0, 0}
	wantMax := mgl32.Vec3{6, 6, 5}
	if scene.BoxMin != wantMin {
		t.Errorf("BoxMin = %v, esperava %v", scene.BoxMin, wantMin)
	}
	if scene.BoxMax != wantMax {
		t.Errorf("BoxMax = %v, esperava %v", scene.BoxMax, wantMax)
	}
}

func TestBuildCategoryHistogram(t *testing.T) {
	r := testResolver()
	src := testSource()
	colors := UniformSampledColors(src.OriginalNumShapes, rand.New(rand.NewSource(7)))

	scene, err := Build(src, r, colors)
	if err != nil {
		t.Fatal(err)
	}

	if scene.Categories["chair"] != 1 || scene.Categories["Wall"] != 1 || scene.Categories["person"] != 1 {
		t.Errorf("histograma inesperado: %v", scene.Categories)
	}
}

func TestBuildPreconditionErrors(t *testing.T) {
	r := testResolver()
	colors := UniformSampledColors(4, rand.New(rand.NewSource(7)))

	tests := []struct {
		name  string
		shape Shape
		want  error
	}{
		{
			"sem faces",
			Shape{Name: "Model#42", OriginalIndex: 0},
			ErrNoFaces,
		},
		{
			"material inconsistente",
			Shape{Name: "Model#42", OriginalIndex: 0, Faces: []Face{
				testFace(0, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),
				testFace(1, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),
			}},
			ErrInconsistentMaterial,
		},
		{
			"material fora do intervalo",
			Shape{Name: "Model#42", OriginalIndex: 0, Faces: []Face{
				testFace(5, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),
			}},
			ErrMaterialOutOfRange,
		},
		{
			"cor de instância ausente",
			Shape{Name: "Model#42", OriginalIndex: 99, Faces: []Face{
				testFace(0, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),
			}},
			ErrMissingInstanceColor,
		},
	}

	for _, tt := range tests {
		src := &SceneSource{
			Shapes:            []Shape{tt.shape},
			Materials:         []Material{{Name: "m0", Dissolve: 1}, {Name: "m1", Dissolve: 1}},
			OriginalNumShapes: 4,
		}
		_, err := Build(src, r, colors)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, esperava %v", tt.name, err, tt.want)
		}
	}
}

func TestSceneCenterExtent(t *testing.T) {
	s := &Scene{BoxMin: mgl32.Vec3{-2, 0, 0}, BoxMax: mgl32.Vec3{2, 8, 4}}
	if got := s.Center(); got != (mgl32.Vec3{0, 4, 2}) {
		t.Errorf("Center() = %v", got)
	}
	if got := s.Extent(); got != 8 {
		t.Errorf("Extent() = %v, esperava 8", got)
	}
}
