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

// Package cryptohost adapts real third-party crypto libraries to the
// shape the host ABI's crypto intrinsics need. It is the concrete
// instance of spec.md §1's "elliptic-curve/hashing/bn128 math primitives
// are external collaborators" boundary: vm.HostEnv only ever calls
// through the Provider interface below.
package cryptohost

// Provider is the crypto surface vm.HostEnv's intrinsic group needs.
// DefaultProvider (provider.go) implements it using stdlib hashes plus
// golang.org/x/crypto, github.com/btcsuite/btcd/btcec/v2 and
// github.com/consensys/gnark-crypto, matching the libraries the teacher's
// own dependency tree already carries for this domain.
type Provider interface {
	Sha1(data []byte) [20]byte
	Sha256(data []byte) [32]byte
	Sha512(data []byte) [64]byte
	Ripemd160(data []byte) [20]byte
	Sha3(data []byte, keccak bool) [32]byte

	// Blake2F implements the EIP-152 blake2b compression function F,
	// operating on the raw 64-byte state, 128-byte message block and
	// 16-byte offset-counter buffers the intrinsic receives verbatim.
	Blake2F(rounds uint32, h [64]byte, m [128]byte, t [16]byte, final bool) ([64]byte, error)

	// RecoverKey recovers a compressed secp256k1 public key from a
	// digest and a 65-byte compact signature laid out as: version byte
	// (0 in this core's convention), then 32 bytes r, then 32 bytes s,
	// with the recovery id folded into (version-27)&0x3 per spec.md §4.5.
	RecoverKey(digest [32]byte, sig [65]byte) ([]byte, error)

	// K1Recover recovers a secp256k1 public key using the Ethereum-style
	// convention: v in [27, 35), followed by 32 bytes r and 32 bytes s.
	K1Recover(digest [32]byte, sig [65]byte) ([]byte, error)

	AltBn128Add(a, b []byte) ([]byte, error)
	AltBn128Mul(point, scalar []byte) ([]byte, error)
	// AltBn128Pair reports whether the product of pairings over the given
	// (G1, G2) point pairs equals the identity element, returning that as
	// a bool (vm.HostEnv turns true into 1 and false into 0).
	AltBn128Pair(pairs []byte) (bool, error)

	ModExp(base, exp, modulus []byte) []byte
}
