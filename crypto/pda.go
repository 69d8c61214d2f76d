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
	"errors"

	"filippo.io/edwards25519"
	"github.com/probechain/go-said/common"
)

const (
	// MaxSeeds is the maximum number of seeds, bump included, that may be
	// used to derive a program address.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
)

// pdaMarker is appended to every derivation so a program address can never
// collide with a hash an attacker controls in another context.
var pdaMarker = []byte("ProgramDerivedAddress")

var (
	ErrMaxSeedLengthExceeded = errors.New("length of a seed exceeds the maximum")
	ErrTooManySeeds          = errors.New("too many seeds for program address")
	ErrInvalidSeeds          = errors.New("provided seeds do not result in a valid address")
	ErrNoViableBump          = errors.New("unable to find a viable program address bump seed")
)

// IsOnCurve reports whether b is the encoding of a point on the ed25519
// curve, i.e. whether someone could hold a private key for it.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress derives the address owned by programID for the given
// seeds. Derived addresses are deliberately off the ed25519 curve so no
// private key can sign for them.
func CreateProgramAddress(seeds [][]byte, programID common.PublicKey) (common.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return common.PublicKey{}, ErrTooManySeeds
	}
	chunks := make([][]byte, 0, len(seeds)+2)
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return common.PublicKey{}, ErrMaxSeedLengthExceeded
		}
		chunks = append(chunks, seed)
	}
	chunks = append(chunks, programID.Bytes(), pdaMarker)

	h := Sha256Hash(chunks...)
	if IsOnCurve(h[:]) {
		return common.PublicKey{}, ErrInvalidSeeds
	}
	return common.PublicKey(h), nil
}

// FindProgramAddress searches bump seeds from 255 downwards and returns the
// first off-curve address together with the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID common.PublicKey) (common.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return common.PublicKey{}, 0, ErrTooManySeeds
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		switch {
		case err == nil:
			return addr, uint8(bump), nil
		case errors.Is(err, ErrInvalidSeeds):
			continue
		default:
			return common.PublicKey{}, 0, err
		}
	}
	return common.PublicKey{}, 0, ErrNoViableBump
}
