// Package protowire implementa o wire format protobuf mínimo usado pelo
// stream de frames do CasaVision (cvnet).
// Wire types: 0=Varint, 2=LengthDelimited, 5=32bit.
package protowire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	WireVarint          = 0
	WireLengthDelimited = 2
	Wire32Bit           = 5
)

var ErrTruncated = errors.New("mensagem truncada")

// ---------- ENCODER ----------

// Encoder acumula bytes no formato protobuf.
type Encoder struct {
	buf []byte
}

// NewEncoder cria um encoder vazio.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Bytes retorna o buffer serializado.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) appendVarint(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

func (e *Encoder) appendTag(fieldNum, wireType int) {
	e.appendVarint(uint64(fieldNum<<3 | wireType))
}

// EncodeVarint codifica um campo varint (int32/int64/enum).
// Zero não é serializado (default do proto3).
func (e *Encoder) EncodeVarint(fieldNum int, v int64) {
	if v == 0 {
		return
	}
	e.appendTag(fieldNum, WireVarint)
	e.appendVarint(uint64(v))
}

// EncodeFloat codifica um float32 (fixed32).
func (e *Encoder) EncodeFloat(fieldNum int, v float32) {
	if v == 0 {
		return
	}
	e.appendTag(fieldNum, Wire32Bit)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	e.buf = append(e.buf, b[:]...)
}

// EncodeBytes codifica bytes crus (length-delimited).
func (e *Encoder) EncodeBytes(fieldNum int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.appendTag(fieldNum, WireLengthDelimited)
	e.appendVarint(uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// EncodeString codifica uma string.
func (e *Encoder) EncodeString(fieldNum int, v string) {
	if v == "" {
		return
	}
	e.appendTag(fieldNum, WireLengthDelimited)
	e.appendVarint(uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// ---------- DECODER ----------

// Decoder percorre campo a campo uma mensagem serializada.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder cria um decoder sobre data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Done informa se a mensagem acabou.
func (d *Decoder) Done() bool {
	return d.pos >= len(d.buf)
}

// ReadTag lê a próxima tag e devolve (fieldNum, wireType).
func (d *Decoder) ReadTag() (int, int, error) {
	v, err := d.readVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(v >> 3), int(v & 0x7), nil
}

func (d *Decoder) readVarint() (uint64, error) {
	var v uint64
	var shift uint
	for {
		if d.pos >= len(d.buf) {
			return 0, ErrTruncated
		}
		b := d.buf[d.pos]
		d.pos++
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, errors.New("varint longo demais")
		}
	}
}

// ReadVarint lê o valor de um campo varint.
func (d *Decoder) ReadVarint() (int64, error) {
	v, err := d.readVarint()
	return int64(v), err
}

// ReadFloat lê um float32 (fixed32).
func (d *Decoder) ReadFloat() (float32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return math.Float32frombits(v), nil
}

// ReadBytes lê um campo length-delimited. O slice aponta para o buffer
// original; copie se precisar reter.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	if uint64(len(d.buf)-d.pos) < n {
		return nil, ErrTruncated
	}
	v := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return v, nil
}

// Skip pula um campo de wire type desconhecido.
func (d *Decoder) Skip(wireType int) error {
	switch wireType {
	case WireVarint:
		_, err := d.readVarint()
		return err
	case Wire32Bit:
		if d.pos+4 > len(d.buf) {
			return ErrTruncated
		}
		d.pos += 4
		return nil
	case WireLengthDelimited:
		_, err := d.ReadBytes()
		return err
	}
	return fmt.Errorf("wire type desconhecido: %d", wireType)
}
