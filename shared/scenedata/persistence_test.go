package scenedata

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCatalogSaveLoadScene(t *testing.T) {
	cat, err := OpenCatalog(filepath.Join(t.TempDir(), "catalogo", "cenas.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	scene := &Scene{
		Entries:    make([]MeshEntry, 2),
		BoxMin:     mgl32.Vec3{-1, 0, 0},
		BoxMax:     mgl32.Vec3{6, 6, 5},
		Categories: map[string]int{"chair": 1, "Wall": 2},
	}

	if err := cat.SaveScene("casa/house.cvs", 3, scene); err != nil {
		t.Fatal(err)
	}

	rec, counts, err := cat.LoadScene("casa/house.cvs")
	if err != nil {
		t.Fatal(err)
	}
	if rec.NumShapes != 3 || rec.NumEntries != 2 {
		t.Errorf("registro = %+v", rec)
	}
	if rec.MinX != -1 || rec.MaxY != 6 {
		t.Errorf("caixa envolvente não persistida: %+v", rec)
	}
	if len(counts) != 2 {
		t.Fatalf("esperava 2 categorias, veio %d", len(counts))
	}

	// Regravar substitui o histograma, não acumula.
	scene.Categories = map[string]int{"chair": 1}
	if err := cat.SaveScene("casa/house.cvs", 3, scene); err != nil {
		t.Fatal(err)
	}
	_, counts, err = cat.LoadScene("casa/house.cvs")
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 || counts[0].Category != "chair" {
		t.Errorf("histograma regravado = %v", counts)
	}
}

func TestCatalogLoadSceneMissing(t *testing.T) {
	cat, err := OpenCatalog(filepath.Join(t.TempDir(), "cenas.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	if _, _, err := cat.LoadScene("inexistente.cvs"); err == nil {
		t.Error("esperava erro para cena fora do catálogo")
	}
}

func TestCatalogNilSafe(t *testing.T) {
	var cat *Catalog
	cat.Close()
	if err := cat.SaveScene("x", 0, &Scene{}); err == nil {
		t.Error("SaveScene em catálogo nulo deveria falhar")
	}
}
