// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/aaroncox/vert/chain"
)

// printConsoleToken is the magic token that, instead of being appended to
// the console buffer, triggers a Store debug dump to stderr (spec.md §6).
// The dump itself is whatever DumpWriter the caller of Prints/PrintsL
// passes; with a nil DumpWriter the token is dropped and nothing is dumped.
const printConsoleToken = "$vertPrintStorage"

// DumpWriter is called when the console-dump magic token is printed. No
// code in this module supplies one; dispatch.Dispatcher does not call the
// print intrinsics itself.
type DumpWriter func()

// PrintsL implements prints_l (a length-prefixed string print).
func (h *HostEnv) PrintsL(offset, length uint32, dump DumpWriter) error {
	s, err := h.ctx.Memory.ReadString(offset, length)
	if err != nil {
		return err
	}
	h.print(s, dump)
	return nil
}

// Prints implements prints (a NUL-terminated string print); since this
// package never scans guest memory for a terminator itself (that belongs
// to whatever engine adapts the raw WASM call), it is handed the already
// length-resolved string the same way PrintsL is.
func (h *HostEnv) Prints(offset, length uint32, dump DumpWriter) error {
	return h.PrintsL(offset, length, dump)
}

// Printi implements printi (signed 64-bit integer print).
func (h *HostEnv) Printi(v int64) {
	h.print(strconv.FormatInt(v, 10), nil)
}

// Printui implements printui (unsigned 64-bit integer print).
func (h *HostEnv) Printui(v uint64) {
	h.print(strconv.FormatUint(v, 10), nil)
}

// Printi128/Printui128 read a 16-byte little-endian integer from guest
// memory and print it in decimal; the formatting uses math/big through
// the format128 helper in hostenv_compilerrt.go.
func (h *HostEnv) Printi128(loOffset uint32) error {
	return h.print128(loOffset, true)
}

func (h *HostEnv) Printui128(loOffset uint32) error {
	return h.print128(loOffset, false)
}

func (h *HostEnv) print128(offset uint32, signed bool) error {
	b, err := h.ctx.Memory.ReadBytes(offset, 16)
	if err != nil {
		return err
	}
	h.print(format128(b, signed), nil)
	return nil
}

// nameCharmap is the base-32 alphabet the Antelope Name text encoding
// uses, reversed-indexed 0..31 ('.' is the padding/terminator symbol).
// This is the one place this package renders a Name as text: decoding
// text back into a Name remains the ABI text parser's job (an external
// collaborator, spec.md §1), but printn's console output is fully
// specified by spec.md §4.5, so the encode side is implemented here.
const nameCharmap = ".12345abcdefghijklmnopqrstuvwxyz"

func nameToString(n chain.Name) string {
	v := uint64(n)
	var buf [13]byte
	for i := 0; i <= 12; i++ {
		var idx uint64
		if i == 0 {
			idx = v & 0x0f
		} else {
			idx = v & 0x1f
		}
		buf[12-i] = nameCharmap[idx]
		if i == 0 {
			v >>= 4
		} else {
			v >>= 5
		}
	}
	s := string(buf[:])
	i := len(s)
	for i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}

// Printn implements printn: renders the Name as its base-32 text form.
func (h *HostEnv) Printn(v int64) {
	h.print(nameToString(chain.NameFromInt64(v)), nil)
}

// Printsf implements printsf (single-precision float print).
func (h *HostEnv) Printsf(v float32) {
	h.print(strconv.FormatFloat(float64(v), 'g', -1, 32), nil)
}

// Printdf implements printdf (double-precision float print).
func (h *HostEnv) Printdf(v float64) {
	h.print(strconv.FormatFloat(v, 'g', -1, 64), nil)
}

// Printqf implements printqf (quadruple/long-double print). The guest
// passes a 16-byte pointer to an IEEE-754 binary128 value the same way
// Printi128/Printui128 take a pointer rather than a value (WASM has no
// native 128-bit float type); this decodes sign/exponent/mantissa by hand
// into a math/big.Float since Go has no native binary128 type either.
func (h *HostEnv) Printqf(offset uint32) error {
	b, err := h.ctx.Memory.ReadBytes(offset, 16)
	if err != nil {
		return err
	}
	h.print(formatQuad(b), nil)
	return nil
}

func formatQuad(b []byte) string {
	lo := binary.LittleEndian.Uint64(b[0:8])
	hi := binary.LittleEndian.Uint64(b[8:16])

	sign := hi >> 63
	exp := (hi >> 48) & 0x7fff
	mant := new(big.Int).Lsh(new(big.Int).SetUint64(hi&0xffffffffffff), 64)
	mant.Or(mant, new(big.Int).SetUint64(lo))

	if exp == 0x7fff {
		if mant.Sign() == 0 {
			if sign == 1 {
				return "-inf"
			}
			return "inf"
		}
		return "nan"
	}

	var f big.Float
	f.SetPrec(150)
	const bias = 16383
	const mantBits = 112
	if exp == 0 {
		f.SetInt(mant)
		f.SetMantExp(&f, -bias-mantBits+1)
	} else {
		full := new(big.Int).Lsh(big.NewInt(1), mantBits)
		full.Or(full, mant)
		f.SetInt(full)
		f.SetMantExp(&f, int(exp)-bias-mantBits)
	}
	if sign == 1 {
		f.Neg(&f)
	}
	return f.Text('g', -1)
}

// Printhex implements printhex.
func (h *HostEnv) Printhex(dataOffset, dataLen uint32) error {
	b, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	h.print(hex.EncodeToString(b), nil)
	return nil
}

func (h *HostEnv) print(s string, dump DumpWriter) {
	if s == printConsoleToken {
		if dump != nil {
			dump()
		}
		return
	}
	h.ctx.Blockchain.AppendConsole(s)
}

// EosioAssert implements eosio_assert.
func (h *HostEnv) EosioAssert(test bool, msgOffset, msgLen uint32) error {
	if test {
		return nil
	}
	msg, err := h.ctx.Memory.ReadString(msgOffset, msgLen)
	if err != nil {
		return err
	}
	return &AssertionError{Message: msg}
}

// EosioAssertMessage is an alias kept distinct from EosioAssert only in
// name, mirroring the ABI's eosio_assert_message import; both share the
// same behavior.
func (h *HostEnv) EosioAssertMessage(test bool, msgOffset, msgLen uint32) error {
	return h.EosioAssert(test, msgOffset, msgLen)
}

// EosioAssertCode implements eosio_assert_code.
func (h *HostEnv) EosioAssertCode(test bool, code uint64) error {
	if test {
		return nil
	}
	return &AssertionError{Message: "assertion failure", Code: code, HasCode: true}
}

// EosioExit implements eosio_exit: a clean, successful unwind, not an
// error (spec.md §4.6/§7), carried as an ExitError sentinel so it can
// still propagate through Go's error-returning call chain.
func (h *HostEnv) EosioExit(code int32) error {
	return &ExitError{Code: code}
}

// Abort implements abort: an unconditional fatal guest assertion.
func (h *HostEnv) Abort() error {
	return &AssertionError{Message: "abort"}
}
