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

package cryptohost

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for the ripemd160 intrinsic
	"golang.org/x/crypto/sha3"
)

// DefaultProvider is the production Provider implementation.
type DefaultProvider struct{}

var _ Provider = DefaultProvider{}

func (DefaultProvider) Sha1(data []byte) [20]byte {
	return sha1.Sum(data)
}

func (DefaultProvider) Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

func (DefaultProvider) Sha512(data []byte) [64]byte {
	return sha512.Sum512(data)
}

func (DefaultProvider) Ripemd160(data []byte) [20]byte {
	h := ripemd160.New()
	h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sha3 computes Keccak-256 when keccak is true (the ETH/EOS convention of
// calling the pre-NIST-finalization variant "sha3" in the intrinsic name),
// or standard NIST SHA3-256 otherwise, per spec.md §4.5's sha3 group.
func (DefaultProvider) Sha3(data []byte, keccak bool) [32]byte {
	var out [32]byte
	if keccak {
		h := sha3.NewLegacyKeccak256()
		h.Write(data)
		copy(out[:], h.Sum(nil))
		return out
	}
	return sha3.Sum256(data)
}

// Blake2F implements EIP-152: h/m/t are the raw byte buffers the
// intrinsic receives, reinterpreted as little-endian uint64 words per the
// precompile's wire format, run through golang.org/x/crypto/blake2b's
// exported compression function F.
func (DefaultProvider) Blake2F(rounds uint32, h [64]byte, m [128]byte, t [16]byte, final bool) ([64]byte, error) {
	var hWords [8]uint64
	for i := range hWords {
		hWords[i] = binary.LittleEndian.Uint64(h[i*8 : i*8+8])
	}
	var mWords [16]uint64
	for i := range mWords {
		mWords[i] = binary.LittleEndian.Uint64(m[i*8 : i*8+8])
	}
	var c [2]uint64
	c[0] = binary.LittleEndian.Uint64(t[0:8])
	c[1] = binary.LittleEndian.Uint64(t[8:16])

	blake2b.F(rounds, &hWords, &mWords, c, final)

	var out [64]byte
	for i, w := range hWords {
		binary.LittleEndian.PutUint64(out[i*8:i*8+8], w)
	}
	return out, nil
}

// RecoverKey implements this core's compact-signature convention (version
// byte 0, recovery id folded into v via (v-27)&0x3, then r, then s).
func (DefaultProvider) RecoverKey(digest [32]byte, sig [65]byte) ([]byte, error) {
	return recoverCompact(digest, sig)
}

// K1Recover implements the Ethereum-style convention: v in [27, 35).
func (DefaultProvider) K1Recover(digest [32]byte, sig [65]byte) ([]byte, error) {
	return recoverCompact(digest, sig)
}

// recoverCompact recovers a compressed secp256k1 public key given a
// digest and a signature laid out as version-byte, r[32], s[32]; both of
// this core's recover intrinsics share this layout (spec.md §4.5), only
// differing in which value range the version byte is drawn from, which
// does not affect recovery itself.
func recoverCompact(digest [32]byte, sig [65]byte) ([]byte, error) {
	recID := (sig[0] - 27) & 0x3
	compact := make([]byte, 65)
	compact[0] = 27 + recID // btcec expects the standard compact-sig header byte
	copy(compact[1:], sig[1:])

	pub, _, err := btcec.RecoverCompact(compact, digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "cryptohost: recover public key")
	}
	return pub.SerializeCompressed(), nil
}

func (DefaultProvider) AltBn128Add(a, b []byte) ([]byte, error) {
	p1, err := decodeG1(a)
	if err != nil {
		return nil, err
	}
	p2, err := decodeG1(b)
	if err != nil {
		return nil, err
	}
	var sum bn254.G1Affine
	var j1, j2, jsum bn254.G1Jac
	j1.FromAffine(p1)
	j2.FromAffine(p2)
	jsum.Set(&j1).AddAssign(&j2)
	sum.FromJacobian(&jsum)
	return encodeG1(&sum), nil
}

func (DefaultProvider) AltBn128Mul(point, scalar []byte) ([]byte, error) {
	p, err := decodeG1(point)
	if err != nil {
		return nil, err
	}
	var s big.Int
	s.SetBytes(scalar)
	var res bn254.G1Jac
	var pj bn254.G1Jac
	pj.FromAffine(p)
	res.ScalarMultiplication(&pj, &s)
	var out bn254.G1Affine
	out.FromJacobian(&res)
	return encodeG1(&out), nil
}

// AltBn128Pair checks whether the product of e(G1_i, G2_i) pairings is the
// identity in GT, the EIP-197 "pairing check" used to verify pairing-based
// proofs; pairs is a concatenation of 192-byte (G1||G2) chunks.
func (DefaultProvider) AltBn128Pair(pairs []byte) (bool, error) {
	const chunkLen = 192
	if len(pairs)%chunkLen != 0 {
		return false, errors.New("cryptohost: alt_bn128_pair input length not a multiple of 192")
	}
	n := len(pairs) / chunkLen
	g1s := make([]bn254.G1Affine, n)
	g2s := make([]bn254.G2Affine, n)
	for i := 0; i < n; i++ {
		chunk := pairs[i*chunkLen : (i+1)*chunkLen]
		p1, err := decodeG1(chunk[0:64])
		if err != nil {
			return false, err
		}
		p2, err := decodeG2(chunk[64:192])
		if err != nil {
			return false, err
		}
		g1s[i] = *p1
		g2s[i] = *p2
	}
	ok, err := bn254.PairingCheck(g1s, g2s)
	if err != nil {
		return false, errors.Wrap(err, "cryptohost: pairing check")
	}
	return ok, nil
}

func (DefaultProvider) ModExp(base, exp, modulus []byte) []byte {
	b := new(big.Int).SetBytes(base)
	e := new(big.Int).SetBytes(exp)
	m := new(big.Int).SetBytes(modulus)
	if m.Sign() == 0 {
		return nil
	}
	r := new(big.Int).Exp(b, e, m)
	out := make([]byte, len(modulus))
	r.FillBytes(out)
	return out
}

func decodeG1(b []byte) (*bn254.G1Affine, error) {
	if len(b) != 64 {
		return nil, errors.New("cryptohost: G1 point must be 64 bytes")
	}
	var p bn254.G1Affine
	p.X.SetBytes(b[0:32])
	p.Y.SetBytes(b[32:64])
	if p.X.IsZero() && p.Y.IsZero() {
		return &p, nil // point at infinity, represented as (0,0) per EIP-196
	}
	if !p.IsOnCurve() {
		return nil, errors.New("cryptohost: G1 point not on curve")
	}
	return &p, nil
}

func decodeG2(b []byte) (*bn254.G2Affine, error) {
	if len(b) != 128 {
		return nil, errors.New("cryptohost: G2 point must be 128 bytes")
	}
	var p bn254.G2Affine
	// EIP-197 encodes each Fp2 coordinate as (imaginary, real), 32 bytes each.
	p.X.A1.SetBytes(b[0:32])
	p.X.A0.SetBytes(b[32:64])
	p.Y.A1.SetBytes(b[64:96])
	p.Y.A0.SetBytes(b[96:128])
	if p.X.IsZero() && p.Y.IsZero() {
		return &p, nil
	}
	if !p.IsOnCurve() {
		return nil, errors.New("cryptohost: G2 point not on curve")
	}
	return &p, nil
}

func encodeG1(p *bn254.G1Affine) []byte {
	out := make([]byte, 64)
	xb := p.X.Bytes()
	yb := p.Y.Bytes()
	copy(out[0:32], xb[:])
	copy(out[32:64], yb[:])
	return out
}
