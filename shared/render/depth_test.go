package render

import (
	"math"
	"testing"
)

func TestInverseDepthEndpoints(t *testing.T) {
	if got := InverseDepth(0); math.Abs(float64(got-1.0/Near)) > 1e-5 {
		t.Errorf("InverseDepth(0) = %v, esperava %v", got, 1.0/Near)
	}
	if got := InverseDepth(1); math.Abs(float64(got-1.0/Far)) > 1e-5 {
		t.Errorf("InverseDepth(1) = %v, esperava %v", got, 1.0/Far)
	}
	if got := TrueDepth(0); math.Abs(float64(got-Near)) > 1e-5 {
		t.Errorf("TrueDepth(0) = %v, esperava %v", got, Near)
	}
	if got := TrueDepth(1); math.Abs(float64(got-Far)) > 1e-4 {
		t.Errorf("TrueDepth(1) = %v, esperava %v", got, Far)
	}
}

func TestPackInvDepthRoundTrip(t *testing.T) {
	for _, minDepth := range []float32{Near, 0.05, 0.02} {
		// Um passo de quantização em invDepth.
		quantum := 1.0 / (65535.0 * float64(minDepth))

		for i := 0; i <= 1000; i++ {
			d := float32(i) / 1000.0
			invDepth := InverseDepth(d)
			if float64(minDepth)*float64(invDepth) > 1.0 {
				continue // fora do alcance representável deste minDepth
			}

			ms, ls := PackInvDepth(invDepth, minDepth)
			decoded := UnpackInvDepth(ms, ls, minDepth)

			if diff := math.Abs(float64(decoded - invDepth)); diff > quantum {
				t.Fatalf("minDepth=%v d=%v: invDepth=%v decodificou %v (erro %v > %v)",
					minDepth, d, invDepth, decoded, diff, quantum)
			}
		}
	}
}

func TestPackInvDepthExtremes(t *testing.T) {
	// invDepth máximo (1/Near) com minDepth = Near satura em 0xFFFF.
	ms, ls := PackInvDepth(1.0/Near, Near)
	if ms != 255 || ls != 255 {
		t.Errorf("pack(1/Near, Near) = (%d, %d), esperava (255, 255)", ms, ls)
	}

	ms, ls = PackInvDepth(0, Near)
	if ms != 0 || ls != 0 {
		t.Errorf("pack(0, Near) = (%d, %d), esperava (0, 0)", ms, ls)
	}
}

func TestUnpackInvDepthChannels(t *testing.T) {
	invDepth := InverseDepth(0.35)
	ms, ls := PackInvDepth(invDepth, Near)

	// Canais normalizados como um agente leria de um frame RGBA.
	r := float32(ms) / 255.0
	g := float32(ls) / 255.0
	decoded := UnpackInvDepthChannels(r, g, Near)

	quantum := 1.0 / (65535.0 * float64(Near))
	if diff := math.Abs(float64(decoded - invDepth)); diff > quantum {
		t.Errorf("canais decodificaram %v, esperava %v (erro %v)", decoded, invDepth, diff)
	}
}
