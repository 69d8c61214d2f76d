// Copyright 2026 The go-said Authors
// This file is part of the go-said library.
//
// The go-said library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-said library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-said library. If not, see <http://www.gnu.org/licenses/>.

package registry

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"

	"github.com/probechain/go-said/common"
)

var (
	errShortBuffer = errors.New("borsh: unexpected end of data")
	errInvalidUTF8 = errors.New("borsh: invalid utf-8 string")
)

// encoder appends the borsh encoding of registry fields: integers little
// endian, keys and digests raw, strings u32 length prefixed, options tagged.
type encoder struct {
	buf []byte
}

func (e *encoder) u8(v uint8) { e.buf = append(e.buf, v) }

func (e *encoder) bool(v bool) {
	if v {
		e.u8(1)
	} else {
		e.u8(0)
	}
}

func (e *encoder) u16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }
func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) u64(v uint64) { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }
func (e *encoder) i64(v int64)  { e.u64(uint64(v)) }

func (e *encoder) key(k common.PublicKey) { e.buf = append(e.buf, k[:]...) }
func (e *encoder) hash(h common.Hash)     { e.buf = append(e.buf, h[:]...) }

func (e *encoder) string(s string) {
	e.u32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) optionI64(v *int64) {
	if v == nil {
		e.u8(0)
		return
	}
	e.u8(1)
	e.i64(*v)
}

// decoder reads borsh fields back. The first failure sticks, so callers
// check err once after reading every field.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.buf) < n {
		d.err = errShortBuffer
		d.buf = nil
		return nil
	}
	b := d.buf[:n]
	d.buf = d.buf[n:]
	return b
}

func (d *decoder) u8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) bool() bool {
	switch d.u8() {
	case 0:
		return false
	case 1:
		return true
	default:
		if d.err == nil {
			d.err = errors.New("borsh: invalid bool")
		}
		return false
	}
}

func (d *decoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) u64() uint64 {
	if b := d.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (d *decoder) i64() int64 { return int64(d.u64()) }

func (d *decoder) key() (k common.PublicKey) {
	if b := d.take(common.PublicKeyLength); b != nil {
		copy(k[:], b)
	}
	return k
}

func (d *decoder) hash() (h common.Hash) {
	if b := d.take(common.HashLength); b != nil {
		copy(h[:], b)
	}
	return h
}

func (d *decoder) string() string {
	n := d.u32()
	if d.err != nil {
		return ""
	}
	if uint64(n) > uint64(len(d.buf)) {
		d.err = errShortBuffer
		return ""
	}
	b := d.take(int(n))
	if !utf8.Valid(b) {
		d.err = errInvalidUTF8
		return ""
	}
	return string(b)
}

func (d *decoder) optionI64() *int64 {
	switch d.u8() {
	case 0:
		return nil
	case 1:
		v := d.i64()
		return &v
	default:
		if d.err == nil {
			d.err = errors.New("borsh: invalid option tag")
		}
		return nil
	}
}

// finish fails if any bytes were left unread.
func (d *decoder) finish() error {
	if d.err == nil && len(d.buf) != 0 {
		d.err = errors.New("borsh: trailing bytes")
	}
	return d.err
}
