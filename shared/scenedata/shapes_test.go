package scenedata

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSplitShapesByMaterial(t *testing.T) {
	src := &SceneSource{
		Shapes: []Shape{
			{Name: "Model#1", OriginalIndex: 0, Faces: []Face{
				{MaterialID: 0}, {MaterialID: 1}, {MaterialID: 0},
			}},
			{Name: "Ground", OriginalIndex: 1, Faces: []Face{
				{MaterialID: 2}, {MaterialID: 2},
			}},
		},
	}

	src.SplitShapesByMaterial()

	if len(src.Shapes) != 3 {
		t.Fatalf("esperava 3 shapes após o split, veio %d", len(src.Shapes))
	}

	// As partes mantêm nome e OriginalIndex do shape de origem.
	for _, i := range []int{0, 1} {
		if src.Shapes[i].Name != "Model#1" || src.Shapes[i].OriginalIndex != 0 {
			t.Errorf("parte %d perdeu a identidade: %+v", i, src.Shapes[i])
		}
	}
	if len(src.Shapes[0].Faces) != 2 || src.Shapes[0].Faces[0].MaterialID != 0 {
		t.Errorf("primeira parte deveria ter as 2 faces do material 0")
	}
	if len(src.Shapes[1].Faces) != 1 || src.Shapes[1].Faces[0].MaterialID != 1 {
		t.Errorf("segunda parte deveria ter a face do material 1")
	}

	// Shape homogêneo passa intacto.
	if src.Shapes[2].Name != "Ground" || len(src.Shapes[2].Faces) != 2 {
		t.Errorf("Ground não deveria ser dividido: %+v", src.Shapes[2])
	}
}

func TestSortByTransparent(t *testing.T) {
	src := &SceneSource{
		Shapes: []Shape{
			{Name: "vidro", Faces: []Face{{MaterialID: 0}}},
			{Name: "parede", Faces: []Face{{MaterialID: 1}}},
			{Name: "cortina", Faces: []Face{{MaterialID: 2}}},
			{Name: "chao", Faces: []Face{{MaterialID: 1}}},
		},
		Materials: []Material{
			{Name: "vidro", Dissolve: 0.4},
			{Name: "opaco", Dissolve: 1.0},
			{Name: "tecido", Dissolve: 1.0, DiffuseTexname: "cortina.png"},
		},
	}

	hasAlpha := func(tex string) bool { return tex == "cortina.png" }
	src.SortByTransparent(hasAlpha)

	gotNames := make([]string, len(src.Shapes))
	for i, s := range src.Shapes {
		gotNames[i] = s.Name
	}
	// Opacos primeiro na ordem original, transparentes ao final.
	want := []string{"parede", "chao", "vidro", "cortina"}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("ordem = %v, esperava %v", gotNames, want)
		}
	}
}

func TestSaveLoadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cena.cvs")
	src := &SceneSource{
		Shapes: []Shape{
			{Name: "Model#1", OriginalIndex: 0, Faces: []Face{
				testFace(0, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),
			}},
		},
		Materials:         []Material{{Name: "m", Dissolve: 1}},
		OriginalNumShapes: 1,
	}

	if err := SaveSource(path, src); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSource(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Shapes) != 1 || got.Shapes[0].Name != "Model#1" {
		t.Fatalf("fonte recarregada inesperada: %+v", got)
	}
	if got.OriginalNumShapes != 1 {
		t.Errorf("OriginalNumShapes = %d", got.OriginalNumShapes)
	}
}

func TestLoadSourceMissingFile(t *testing.T) {
	if _, err := LoadSource(filepath.Join(t.TempDir(), "nao_existe.cvs")); err == nil {
		t.Error("esperava erro para cena inexistente")
	}
}
