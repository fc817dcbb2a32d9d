package scenedata

import (
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// maxInstanceColors é o teto de cores distintas após a quantização em
// 8 bits por canal, descontando a margem dos extremos do cubo.
const maxInstanceColors = 256*256*256 - 2

// UniformSampledColors devolve exatamente n cores RGB normalizadas e
// distintas, espalhadas uniformemente pelo cubo de 24 bits para
// minimizar colisões após a quantização em 8 bits por canal.
//
// O cubo [0, 256^3) é particionado em n+2 intervalos iguais (a margem
// de +2 evita cores nos extremos, que colidiriam com a cor de fundo) e
// os limites dos intervalos viram as cores base. O shuffle final usa o
// rng injetado para que índices vizinhos não recebam cores parecidas e
// o resultado seja reproduzível nos testes.
//
// Deve ser chamada com n = contagem ORIGINAL de shapes (antes de
// filtros), para que Shape.OriginalIndex continue indexando o resultado.
// Acima de maxInstanceColors não há como manter as cores distintas;
// o pedido é recusado (nil) e logado.
func UniformSampledColors(n int, rng *rand.Rand) []mgl32.Vec3 {
	if n <= 0 {
		return nil
	}
	if n > maxInstanceColors {
		log.Printf("[Cena] %d cores de instância não cabem no cubo de 24 bits", n)
		return nil
	}

	interval := (256 * 256 * 256) / (n + 2)
	current := interval

	result := make([]mgl32.Vec3, 0, n)
	for i := 0; i < n; i++ {
		r := current % 256
		g := (current / 256) % 256
		b := (current / 256 / 256) % 256

		result = append(result, mgl32.Vec3{
			float32(r) / 255.0,
			float32(g) / 255.0,
			float32(b) / 255.0,
		})

		current += interval
	}

	rng.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result
}
