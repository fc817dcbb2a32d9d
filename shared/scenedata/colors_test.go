package scenedata

import (
	"math/rand"
	"testing"
)

func TestUniformSampledColorsCountAndRange(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 500, 4096} {
		colors := UniformSampledColors(n, rand.New(rand.NewSource(1)))
		if len(colors) != n {
			t.Fatalf("UniformSampledColors(%d) devolveu %d cores", n, len(colors))
		}

		seen := make(map[[3]float32]bool, n)
		for _, c := range colors {
			for i := 0; i < 3; i++ {
				if c[i] < 0 || c[i] > 1 {
					t.Errorf("n=%d: canal fora de [0,1]: %v", n, c)
				}
			}
			key := [3]float32{c[0], c[1], c[2]}
			if seen[key] {
				t.Errorf("n=%d: cor repetida %v", n, c)
			}
			seen[key] = true
		}
	}
}

func TestUniformSampledColorsDeterministic(t *testing.T) {
	a := UniformSampledColors(100, rand.New(rand.NewSource(42)))
	b := UniformSampledColors(100, rand.New(rand.NewSource(42)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mesma semente produziu cores diferentes no índice %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestUniformSampledColorsZero(t *testing.T) {
	if got := UniformSampledColors(0, rand.New(rand.NewSource(1))); got != nil {
		t.Errorf("UniformSampledColors(0) = %v, esperava nil", got)
	}
}

func TestUniformSampledColorsOverCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Até o teto o intervalo ainda é >= 1 e as cores saem distintas.
	if interval := (256 * 256 * 256) / (maxInstanceColors + 2); interval < 1 {
		t.Fatalf("intervalo no teto = %d", interval)
	}

	// Acima do teto não há cores distintas possíveis; o pedido é recusado
	// em vez de degenerar tudo para preto.
	if got := UniformSampledColors(maxInstanceColors+1, rng); got != nil {
		t.Errorf("pedido acima do teto devolveu %d cores, esperava nil", len(got))
	}
}
