// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"encoding/binary"
)

// binWriter produces the deterministic binary encoding that digests and
// signatures are computed over. The encoding is write-only: nothing on the
// wire is parsed back, so there is no reader counterpart.
type binWriter struct {
	buf bytes.Buffer
}

func (w *binWriter) u8(v byte)     { w.buf.WriteByte(v) }
func (w *binWriter) u16(v uint16)  { _ = binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *binWriter) u32(v uint32)  { _ = binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *binWriter) u64(v uint64)  { _ = binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *binWriter) i64(v int64)   { _ = binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *binWriter) bytes(b []byte) {
	w.uvarint(uint64(len(b)))
	w.buf.Write(b)
}

func (w *binWriter) uvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

func (w *binWriter) authority(a *Authority) {
	w.u32(a.WeightThreshold)
	w.uvarint(uint64(len(a.KeyAuths)))
	for _, e := range a.KeyAuths {
		w.buf.Write(e.Key[:])
		w.u32(e.Weight)
	}
	w.uvarint(uint64(len(a.AddressAuths)))
	for _, e := range a.AddressAuths {
		w.bytes([]byte(e.Address))
		w.u32(e.Weight)
	}
	w.uvarint(uint64(len(a.AccountAuths)))
	for _, e := range a.AccountAuths {
		w.u64(uint64(e.Account))
		w.u32(e.Weight)
	}
}
