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

package common

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Lengths of hashes and public keys in bytes.
const (
	// HashLength is the expected length of the hash
	HashLength = 32
	// PublicKeyLength is the expected length of an ed25519 public key or a
	// program derived address
	PublicKeyLength = 32
)

var (
	errInvalidBase58Key = errors.New("invalid base58 public key")
	errKeyTooLong       = errors.New("public key longer than 32 bytes")
)

// PublicKey identifies an account: either the ed25519 public key of a signer
// or an off-curve address derived from seeds.
type PublicKey [PublicKeyLength]byte

// BytesToPublicKey sets b to a public key.
// If b is larger than len(k), b will be cropped from the left.
func BytesToPublicKey(b []byte) PublicKey {
	var k PublicKey
	k.SetBytes(b)
	return k
}

// Base58ToPublicKey decodes the canonical base58 text form of a key.
func Base58ToPublicKey(s string) (PublicKey, error) {
	raw, err := base58.Decode(strings.TrimSpace(s))
	if err != nil || len(raw) == 0 {
		return PublicKey{}, fmt.Errorf("%w: %q", errInvalidBase58Key, s)
	}
	if len(raw) > PublicKeyLength {
		return PublicKey{}, fmt.Errorf("%w: %q", errKeyTooLong, s)
	}
	return BytesToPublicKey(raw), nil
}

// MustBase58ToPublicKey is Base58ToPublicKey but panics on malformed input.
// It is meant for compiled-in constants.
func MustBase58ToPublicKey(s string) PublicKey {
	k, err := Base58ToPublicKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// SetBytes sets the key to the value of b.
// If b is larger than len(k), b will be cropped from the left.
func (k *PublicKey) SetBytes(b []byte) {
	if len(b) > len(k) {
		b = b[len(b)-PublicKeyLength:]
	}
	copy(k[PublicKeyLength-len(b):], b)
}

// Bytes gets the byte representation of the underlying key.
func (k PublicKey) Bytes() []byte { return k[:] }

// IsZero reports whether the key is all zeroes (the system program ID).
func (k PublicKey) IsZero() bool { return k == PublicKey{} }

// Equal reports whether two keys are identical.
func (k PublicKey) Equal(other PublicKey) bool { return bytes.Equal(k[:], other[:]) }

// String implements fmt.Stringer. Keys are rendered in base58.
func (k PublicKey) String() string {
	if k.IsZero() {
		return strings.Repeat("1", PublicKeyLength)
	}
	return base58.Encode(k[:])
}

// TerminalString formats a shortened key for console logging.
func (k PublicKey) TerminalString() string {
	s := k.String()
	if len(s) <= 12 {
		return s
	}
	return s[:6] + ".." + s[len(s)-4:]
}

// MarshalText returns the base58 representation of k.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a key in base58 syntax.
func (k *PublicKey) UnmarshalText(input []byte) error {
	key, err := Base58ToPublicKey(string(input))
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// Hash represents a 32 byte digest, used for transaction hashes, event
// topics and task digests.
type Hash [HashLength]byte

// BytesToHash sets b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash sets byte representation of s to hash.
// If b is larger than len(h), b will be cropped from the left.
func HexToHash(s string) Hash { return BytesToHash(FromHex(s)) }

// SetBytes sets the hash to the value of b.
// If b is larger than len(h), b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex converts a hash to a 0x-prefixed hex string.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// TerminalString formats a hash for console output during logging.
func (h Hash) TerminalString() string {
	return fmt.Sprintf("%x..%x", h[:3], h[29:])
}

// String implements the stringer interface and is used also by the logger when
// doing full logging into a file.
func (h Hash) String() string {
	return h.Hex()
}

// MarshalText returns the hex representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText parses a hash in hex syntax.
func (h *Hash) UnmarshalText(input []byte) error {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(string(input), "0x"), "0X"))
	if err != nil {
		return fmt.Errorf("invalid hash %q: %v", input, err)
	}
	if len(raw) != HashLength {
		return fmt.Errorf("invalid hash length %d, want %d", len(raw), HashLength)
	}
	copy(h[:], raw)
	return nil
}

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x". Odd-length input is left padded with a zero.
func FromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	h, _ := hex.DecodeString(s)
	return h
}

func has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}
