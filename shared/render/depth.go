// Package render executa o despacho por modo da cena CasaVision: um
// shader compartilhado, cinco modos de saída, mesma ordem de draw em
// todos eles.
package render

import "math"

// Planos de recorte da câmera. Precisam casar exatamente com NEAR/FAR
// no fragment shader (shaders.go).
const (
	Near float32 = 0.1
	Far  float32 = 100.0

	// Divisor da profundidade verdadeira no modo DEPTH.
	DepthScale float32 = 20.0
)

// InverseDepth converte o valor do depth buffer d ∈ [0,1] em
// profundidade inversa, interpolando linearmente entre 1/Near e 1/Far.
func InverseDepth(d float32) float32 {
	return 1.0/Near + d*(1.0/Far-1.0/Near)
}

// TrueDepth converte o valor do depth buffer em profundidade verdadeira.
func TrueDepth(d float32) float32 {
	return 1.0 / InverseDepth(d)
}

// PackInvDepth empacota a profundidade inversa em 16 bits de ponto fixo
// distribuídos em dois canais de 8 bits, espelhando o fragment shader:
// f = 65535*minDepth*invDepth + 0.5, ms = floor(f/256),
// ls = floor(f - ms*256). Com minDepth ≤ Near, f fica em [0, 65535] por
// construção; valores acima saturam.
func PackInvDepth(invDepth, minDepth float32) (ms, ls uint8) {
	f := 65535.0*float64(minDepth)*float64(invDepth) + 0.5
	if f > 65535.0 {
		f = 65535.0
	}
	if f < 0 {
		f = 0
	}
	m := math.Floor(f / 256.0)
	l := math.Floor(f - m*256.0)
	if l > 255 {
		l = 255
	}
	return uint8(m), uint8(l)
}

// UnpackInvDepth inverte PackInvDepth a partir dos bytes dos canais
// vermelho e verde: f = ms*256 + ls, invDepth = f / (65535*minDepth).
func UnpackInvDepth(ms, ls uint8, minDepth float32) float32 {
	f := float64(ms)*256.0 + float64(ls)
	return float32(f / (65535.0 * float64(minDepth)))
}

// UnpackInvDepthChannels decodifica a partir dos canais normalizados
// [0,1], como lidos de um frame RGBA: f = round(r*255)*256 +
// round(g*255).
func UnpackInvDepthChannels(r, g, minDepth float32) float32 {
	ms := uint8(math.Round(float64(r) * 255.0))
	ls := uint8(math.Round(float64(g) * 255.0))
	return UnpackInvDepth(ms, ls, minDepth)
}
