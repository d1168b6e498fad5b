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

import "bytes"

func (h *HostEnv) readDigest(offset uint32) ([]byte, error) {
	return h.ctx.Memory.ReadBytes(offset, 32)
}

// Sha1 implements sha1.
func (h *HostEnv) Sha1(dataOffset, dataLen uint32, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	sum := h.crypto.Sha1(data)
	return h.ctx.Memory.WriteBytes(hashOffset, sum[:])
}

// AssertSha1 implements assert_sha1.
func (h *HostEnv) AssertSha1(dataOffset, dataLen, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	want, err := h.ctx.Memory.ReadBytes(hashOffset, 20)
	if err != nil {
		return err
	}
	got := h.crypto.Sha1(data)
	if !bytes.Equal(got[:], want) {
		return &AssertionError{Message: "sha1 mismatch"}
	}
	return nil
}

// Sha256 implements sha256.
func (h *HostEnv) Sha256(dataOffset, dataLen, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	sum := h.crypto.Sha256(data)
	return h.ctx.Memory.WriteBytes(hashOffset, sum[:])
}

// AssertSha256 implements assert_sha256.
func (h *HostEnv) AssertSha256(dataOffset, dataLen, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	want, err := h.ctx.Memory.ReadBytes(hashOffset, 32)
	if err != nil {
		return err
	}
	got := h.crypto.Sha256(data)
	if !bytes.Equal(got[:], want) {
		return &AssertionError{Message: "sha256 mismatch"}
	}
	return nil
}

// Sha512 implements sha512.
func (h *HostEnv) Sha512(dataOffset, dataLen, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	sum := h.crypto.Sha512(data)
	return h.ctx.Memory.WriteBytes(hashOffset, sum[:])
}

// AssertSha512 implements assert_sha512.
func (h *HostEnv) AssertSha512(dataOffset, dataLen, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	want, err := h.ctx.Memory.ReadBytes(hashOffset, 64)
	if err != nil {
		return err
	}
	got := h.crypto.Sha512(data)
	if !bytes.Equal(got[:], want) {
		return &AssertionError{Message: "sha512 mismatch"}
	}
	return nil
}

// Ripemd160 implements ripemd160.
func (h *HostEnv) Ripemd160(dataOffset, dataLen, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	sum := h.crypto.Ripemd160(data)
	return h.ctx.Memory.WriteBytes(hashOffset, sum[:])
}

// AssertRipemd160 implements assert_ripemd160.
func (h *HostEnv) AssertRipemd160(dataOffset, dataLen, hashOffset uint32) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	want, err := h.ctx.Memory.ReadBytes(hashOffset, 20)
	if err != nil {
		return err
	}
	got := h.crypto.Ripemd160(data)
	if !bytes.Equal(got[:], want) {
		return &AssertionError{Message: "ripemd160 mismatch"}
	}
	return nil
}

// Sha3 implements sha3; keccak selects the legacy Keccak-256 variant.
func (h *HostEnv) Sha3(dataOffset, dataLen, hashOffset uint32, keccak bool) error {
	data, err := h.ctx.Memory.ReadBytes(dataOffset, dataLen)
	if err != nil {
		return err
	}
	sum := h.crypto.Sha3(data, keccak)
	return h.ctx.Memory.WriteBytes(hashOffset, sum[:])
}

// Blake2F implements the blake2_f intrinsic (EIP-152 shape).
func (h *HostEnv) Blake2F(rounds uint32, stateOffset, msgOffset, tOffset uint32, final bool, resultOffset uint32) (int32, error) {
	var state [64]byte
	var msg [128]byte
	var t [16]byte
	sb, err := h.ctx.Memory.ReadBytes(stateOffset, 64)
	if err != nil {
		return 0, err
	}
	copy(state[:], sb)
	mb, err := h.ctx.Memory.ReadBytes(msgOffset, 128)
	if err != nil {
		return 0, err
	}
	copy(msg[:], mb)
	tb, err := h.ctx.Memory.ReadBytes(tOffset, 16)
	if err != nil {
		return 0, err
	}
	copy(t[:], tb)

	out, err := h.crypto.Blake2F(rounds, state, msg, t, final)
	if err != nil {
		return 0, &PreconditionError{Err: err}
	}
	if err := h.ctx.Memory.WriteBytes(resultOffset, out[:]); err != nil {
		return 0, err
	}
	return 1, nil
}

// AltBn128Add implements alt_bn128_add (EIP-196).
func (h *HostEnv) AltBn128Add(op1Offset, op1Len, op2Offset, op2Len, resultOffset, resultLen uint32) (int32, error) {
	a, err := h.ctx.Memory.ReadBytes(op1Offset, op1Len)
	if err != nil {
		return 0, err
	}
	b, err := h.ctx.Memory.ReadBytes(op2Offset, op2Len)
	if err != nil {
		return 0, err
	}
	sum, err := h.crypto.AltBn128Add(a, b)
	if err != nil {
		return -1, nil
	}
	if _, err := h.ctx.Memory.WriteSized(resultOffset, resultLen, sum); err != nil {
		return 0, err
	}
	return 0, nil
}

// AltBn128Mul implements alt_bn128_mul (EIP-196).
func (h *HostEnv) AltBn128Mul(gOffset, gLen, scalarOffset, scalarLen, resultOffset, resultLen uint32) (int32, error) {
	g, err := h.ctx.Memory.ReadBytes(gOffset, gLen)
	if err != nil {
		return 0, err
	}
	s, err := h.ctx.Memory.ReadBytes(scalarOffset, scalarLen)
	if err != nil {
		return 0, err
	}
	res, err := h.crypto.AltBn128Mul(g, s)
	if err != nil {
		return -1, nil
	}
	if _, err := h.ctx.Memory.WriteSized(resultOffset, resultLen, res); err != nil {
		return 0, err
	}
	return 0, nil
}

// AltBn128Pair implements alt_bn128_pair (EIP-197). It returns 1 when the
// product of the pairings equals the identity (the pairing check holds),
// 0 when it does not, and -1 when the input is malformed (see DESIGN.md
// Open Questions).
func (h *HostEnv) AltBn128Pair(pairsOffset, pairsLen uint32) (int32, error) {
	data, err := h.ctx.Memory.ReadBytes(pairsOffset, pairsLen)
	if err != nil {
		return 0, err
	}
	identity, err := h.crypto.AltBn128Pair(data)
	if err != nil {
		return -1, nil
	}
	if identity {
		return 1, nil
	}
	return 0, nil
}

// ModExp implements mod_exp; returns -1 when the modulus is zero per
// spec.md §4.5.
func (h *HostEnv) ModExp(baseOffset, baseLen, expOffset, expLen, modOffset, modLen, resultOffset, resultLen uint32) (int32, error) {
	base, err := h.ctx.Memory.ReadBytes(baseOffset, baseLen)
	if err != nil {
		return 0, err
	}
	exp, err := h.ctx.Memory.ReadBytes(expOffset, expLen)
	if err != nil {
		return 0, err
	}
	mod, err := h.ctx.Memory.ReadBytes(modOffset, modLen)
	if err != nil {
		return 0, err
	}
	isZero := true
	for _, bb := range mod {
		if bb != 0 {
			isZero = false
			break
		}
	}
	if isZero {
		return -1, nil
	}
	res := h.crypto.ModExp(base, exp, mod)
	if _, err := h.ctx.Memory.WriteSized(resultOffset, resultLen, res); err != nil {
		return 0, err
	}
	return 0, nil
}

// RecoverKey implements recover_key.
func (h *HostEnv) RecoverKey(digestOffset uint32, sigOffset, sigLen, pubOffset, pubLen uint32) (int32, error) {
	return h.recover(digestOffset, sigOffset, sigLen, pubOffset, pubLen, h.crypto.RecoverKey)
}

// AssertRecoverKey implements assert_recover_key.
func (h *HostEnv) AssertRecoverKey(digestOffset uint32, sigOffset, sigLen, pubOffset, pubLen uint32) error {
	got, err := h.recoverBytes(digestOffset, sigOffset, sigLen, h.crypto.RecoverKey)
	if err != nil {
		return err
	}
	want, err := h.ctx.Memory.ReadBytes(pubOffset, pubLen)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return &AssertionError{Message: "recovered key does not match"}
	}
	return nil
}

// K1Recover implements k1_recover.
func (h *HostEnv) K1Recover(digestOffset uint32, sigOffset, sigLen, pubOffset, pubLen uint32) (int32, error) {
	return h.recover(digestOffset, sigOffset, sigLen, pubOffset, pubLen, h.crypto.K1Recover)
}

type recoverFunc func(digest [32]byte, sig [65]byte) ([]byte, error)

func (h *HostEnv) recover(digestOffset, sigOffset, sigLen, pubOffset, pubLen uint32, fn recoverFunc) (int32, error) {
	pub, err := h.recoverBytes(digestOffset, sigOffset, sigLen, fn)
	if err != nil {
		return -1, nil
	}
	if _, err := h.ctx.Memory.WriteSized(pubOffset, pubLen, pub); err != nil {
		return 0, err
	}
	return 0, nil
}

func (h *HostEnv) recoverBytes(digestOffset, sigOffset, sigLen uint32, fn recoverFunc) ([]byte, error) {
	digestB, err := h.readDigest(digestOffset)
	if err != nil {
		return nil, err
	}
	sigB, err := h.ctx.Memory.ReadBytes(sigOffset, sigLen)
	if err != nil {
		return nil, err
	}
	var digest [32]byte
	copy(digest[:], digestB)
	var sig [65]byte
	copy(sig[:], sigB)
	return fn(digest, sig)
}
