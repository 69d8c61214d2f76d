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

package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"os"

	"github.com/probechain/go-said/common"
	"golang.org/x/crypto/sha3"
)

// SignatureLength indicates the byte length of an ed25519 signature.
const SignatureLength = ed25519.SignatureSize

// DigestLength sets the signature digest exact length
const DigestLength = 32

var errKeypairLength = errors.New("keypair file must hold 64 bytes")

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// Sha256Hash returns the SHA-256 digest of the concatenated input. It backs
// task digests, discriminators and program address derivation.
func Sha256Hash(data ...[]byte) (h common.Hash) {
	d := sha256.New()
	for _, b := range data {
		d.Write(b)
	}
	copy(h[:], d.Sum(nil))
	return h
}

// GenerateKey generates a new ed25519 signing key.
func GenerateKey() (ed25519.PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	return priv, err
}

// PubkeyOf returns the account key controlled by priv.
func PubkeyOf(priv ed25519.PrivateKey) common.PublicKey {
	return common.BytesToPublicKey(priv.Public().(ed25519.PublicKey))
}

// Sign signs msg with priv.
func Sign(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// VerifySignature checks that sig is a valid signature of msg by pub.
func VerifySignature(pub common.PublicKey, msg, sig []byte) bool {
	if len(sig) != SignatureLength {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}

// LoadKeypair loads an ed25519 keypair stored as a JSON array of 64 bytes
// (seed followed by public key).
func LoadKeypair(file string) (ed25519.PrivateKey, error) {
	blob, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var raw []byte
	var ints []int
	if err := json.Unmarshal(blob, &ints); err != nil {
		return nil, fmt.Errorf("invalid keypair file %s: %v", file, err)
	}
	for _, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid keypair file %s: byte out of range", file)
		}
		raw = append(raw, byte(v))
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errKeypairLength
	}
	priv := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !PubkeyOf(priv).Equal(common.BytesToPublicKey(raw[ed25519.SeedSize:])) {
		return nil, fmt.Errorf("invalid keypair file %s: public key does not match seed", file)
	}
	return priv, nil
}

// SaveKeypair saves an ed25519 keypair to the given file with restrictive
// permissions.
func SaveKeypair(file string, priv ed25519.PrivateKey) error {
	ints := make([]int, len(priv))
	for i, b := range priv {
		ints[i] = int(b)
	}
	blob, err := json.Marshal(ints)
	if err != nil {
		return err
	}
	return os.WriteFile(file, blob, 0600)
}
