package cvnet

import (
	"bytes"
	"testing"
)

func TestFrameMessageRoundTrip(t *testing.T) {
	pixels := make([]byte, 2*3*4)
	for i := range pixels {
		pixels[i] = byte(i * 7)
	}
	in := FrameMessage{
		Mode:     4,
		Width:    2,
		Height:   3,
		MinDepth: 0.05,
		Pixels:   pixels,
	}

	var out FrameMessage
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatal(err)
	}

	if out.Mode != in.Mode || out.Width != in.Width || out.Height != in.Height {
		t.Errorf("cabeçalho = %+v, esperava %+v", out, in)
	}
	if out.MinDepth != in.MinDepth {
		t.Errorf("MinDepth = %v, esperava %v", out.MinDepth, in.MinDepth)
	}
	if !bytes.Equal(out.Pixels, in.Pixels) {
		t.Error("pixels não sobreviveram ao round-trip")
	}
}

func TestFrameMessagePixelLengthMismatch(t *testing.T) {
	in := FrameMessage{
		Mode:   0,
		Width:  4,
		Height: 4,
		Pixels: make([]byte, 10), // deveria ser 4*4*4
	}

	var out FrameMessage
	if err := out.Unmarshal(in.Marshal()); err == nil {
		t.Error("esperava erro para contagem de pixels inconsistente")
	}
}

func TestFrameMessageTruncated(t *testing.T) {
	in := FrameMessage{Width: 1, Height: 1, Pixels: make([]byte, 4)}
	data := in.Marshal()

	var out FrameMessage
	if err := out.Unmarshal(data[:len(data)-2]); err == nil {
		t.Error("esperava erro para mensagem truncada")
	}
}

func TestModeRequestRoundTrip(t *testing.T) {
	for _, mode := range []int32{0, 1, 2, 3, 4} {
		in := ModeRequest{Mode: mode}
		var out ModeRequest
		if err := out.Unmarshal(in.Marshal()); err != nil {
			t.Fatal(err)
		}
		if out.Mode != mode {
			t.Errorf("Mode = %d, esperava %d", out.Mode, mode)
		}
	}
}
