package model

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/d60-Lab/commentlog/internal/address"
)

// ErrCorruptRecord 记录字节长度或类型标记不匹配
var ErrCorruptRecord = errors.New("corrupt record")

// 记录类型标记（每条记录首字节）
const (
	kindPost byte = iota + 1
	kindCommentPage
	kindUserLike
	kindCommentLikes
	kindFollow
	kindProfile
	kindBalance
)

// Record 定长、可寻址的持久化记录
type Record interface {
	Namespace() string
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// encoder writes a fixed-size little-endian layout into a preallocated buffer.
type encoder struct {
	buf []byte
	off int
}

func newEncoder(size int, kind byte) *encoder {
	e := &encoder{buf: make([]byte, size)}
	e.u8(kind)
	return e
}

func (e *encoder) u8(v byte) {
	e.buf[e.off] = v
	e.off++
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.buf[e.off:], v)
	e.off += 2
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[e.off:], v)
	e.off += 4
}

func (e *encoder) u64(v uint64) {
	binary.LittleEndian.PutUint64(e.buf[e.off:], v)
	e.off += 8
}

func (e *encoder) i64(v int64) { e.u64(uint64(v)) }

func (e *encoder) raw(b []byte) {
	copy(e.buf[e.off:], b)
	e.off += len(b)
}

func (e *encoder) address(a address.Address) { e.raw(a[:]) }

// str stores a u16 length followed by the bytes, zero padded to capacity.
func (e *encoder) str(s string, capacity int) error {
	if len(s) > capacity {
		return fmt.Errorf("string of %d bytes exceeds slot of %d", len(s), capacity)
	}
	e.u16(uint16(len(s)))
	copy(e.buf[e.off:], s)
	e.off += capacity
	return nil
}

func (e *encoder) bytes() []byte { return e.buf }

type decoder struct {
	buf []byte
	off int
}

func newDecoder(data []byte, size int, kind byte) (*decoder, error) {
	if len(data) != size {
		return nil, fmt.Errorf("%w: size %d, want %d", ErrCorruptRecord, len(data), size)
	}
	if data[0] != kind {
		return nil, fmt.Errorf("%w: kind %d, want %d", ErrCorruptRecord, data[0], kind)
	}
	return &decoder{buf: data, off: 1}, nil
}

func (d *decoder) u8() byte {
	v := d.buf[d.off]
	d.off++
	return v
}

func (d *decoder) u16() uint16 {
	v := binary.LittleEndian.Uint16(d.buf[d.off:])
	d.off += 2
	return v
}

func (d *decoder) u32() uint32 {
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v
}

func (d *decoder) u64() uint64 {
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += 8
	return v
}

func (d *decoder) i64() int64 { return int64(d.u64()) }

func (d *decoder) raw(n int) []byte {
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) address() address.Address {
	var a address.Address
	copy(a[:], d.raw(address.Size))
	return a
}

func (d *decoder) str(capacity int) (string, error) {
	n := int(d.u16())
	slot := d.raw(capacity)
	if n > capacity {
		return "", fmt.Errorf("%w: string length %d exceeds slot %d", ErrCorruptRecord, n, capacity)
	}
	return string(slot[:n]), nil
}
