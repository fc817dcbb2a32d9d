package main

import (
	"image/color"
	"testing"
)

func TestPackPixelsFlipsRows(t *testing.T) {
	// 2x2 como vem do render texture: linha de baixo primeiro.
	colors := []color.RGBA{
		{R: 10, G: 11, B: 12, A: 255}, {R: 20, G: 21, B: 22, A: 255}, // baixo
		{R: 30, G: 31, B: 32, A: 255}, {R: 40, G: 41, B: 42, A: 128}, // cima
	}

	pixels := packPixels(colors, 2, 2)
	if len(pixels) != 2*2*4 {
		t.Fatalf("len(pixels) = %d, esperava %d", len(pixels), 2*2*4)
	}

	// O frame sai com a linha de cima primeiro.
	want := []byte{
		30, 31, 32, 255, 40, 41, 42, 128,
		10, 11, 12, 255, 20, 21, 22, 255,
	}
	for i := range want {
		if pixels[i] != want[i] {
			t.Fatalf("pixels = %v, esperava %v", pixels, want)
		}
	}
}

func TestPackPixelsCopies(t *testing.T) {
	colors := []color.RGBA{{R: 5, G: 6, B: 7, A: 255}}
	pixels := packPixels(colors, 1, 1)

	// O resultado não pode apontar para o buffer de entrada, que é
	// liberado logo após a captura.
	colors[0] = color.RGBA{}
	if pixels[0] != 5 || pixels[3] != 255 {
		t.Errorf("pixels compartilham memória com a entrada: %v", pixels)
	}
}
