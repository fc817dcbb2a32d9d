// Package cvnet define as mensagens do stream de frames entre o
// servidor CasaVision e os agentes consumidores.
package cvnet

import (
	"fmt"

	"CasaVision/shared/pkg/protowire"
)

// FrameMessage carrega um frame renderizado. Pixels é RGBA8, linha de
// cima primeiro. A semântica dos canais depende de Mode; no modo
// invdepth, MinDepth permite ao agente decodificar os 16 bits.
type FrameMessage struct {
	Mode     int32 // valor numérico de render.RenderMode
	Width    int32
	Height   int32
	MinDepth float32
	Pixels   []byte
}

func (m *FrameMessage) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.Mode))
	e.EncodeVarint(2, int64(m.Width))
	e.EncodeVarint(3, int64(m.Height))
	e.EncodeFloat(4, m.MinDepth)
	e.EncodeBytes(5, m.Pixels)
	return e.Bytes()
}

func (m *FrameMessage) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		field, wire, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch field {
		case 1, 2, 3:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			switch field {
			case 1:
				m.Mode = int32(v)
			case 2:
				m.Width = int32(v)
			case 3:
				m.Height = int32(v)
			}
		case 4:
			v, err := d.ReadFloat()
			if err != nil {
				return err
			}
			m.MinDepth = v
		case 5:
			v, err := d.ReadBytes()
			if err != nil {
				return err
			}
			m.Pixels = append([]byte(nil), v...)
		default:
			if err := d.Skip(wire); err != nil {
				return err
			}
		}
	}

	if int64(m.Width)*int64(m.Height)*4 != int64(len(m.Pixels)) {
		return fmt.Errorf("frame %dx%d com %d bytes de pixels", m.Width, m.Height, len(m.Pixels))
	}
	return nil
}

// ModeRequest é enviada pelo agente para trocar o modo dos próximos
// frames.
type ModeRequest struct {
	Mode int32
}

func (m *ModeRequest) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.Mode))
	return e.Bytes()
}

func (m *ModeRequest) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		field, wire, err := d.ReadTag()
		if err != nil {
			return err
		}
		if field == 1 {
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.Mode = int32(v)
			continue
		}
		if err := d.Skip(wire); err != nil {
			return err
		}
	}
	return nil
}
