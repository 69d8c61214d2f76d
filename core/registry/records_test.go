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
	"bytes"
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/params"
)

func TestRecordSpaces(t *testing.T) {
	tests := []struct {
		rec  record
		want int
	}{
		{new(Treasury), 49},
		{new(AgentIdentity), 295},
		{new(WalletLink), 73},
		{new(AgentReputation), 75},
		{new(ValidationRecord), 318},
	}
	for _, tt := range tests {
		if have := tt.rec.space(); have != tt.want {
			t.Errorf("%s: space %d, want %d", tt.rec.recordName(), have, tt.want)
		}
		if have := len(encodeRecord(tt.rec)); have != tt.want {
			t.Errorf("%s: encoded length %d, want %d", tt.rec.recordName(), have, tt.want)
		}
	}
}

func TestRecordsFitAtMaximumLength(t *testing.T) {
	at := int64(-1)
	id := &AgentIdentity{
		Owner:       common.BytesToPublicKey([]byte{1}),
		Authority:   common.BytesToPublicKey([]byte{2}),
		MetadataURI: strings.Repeat("u", params.MaxURILength),
		CreatedAt:   1 << 62,
		IsVerified:  true,
		VerifiedAt:  &at,
		Bump:        255,
	}
	enc := encodeRecord(id)
	if enc[len(enc)-1] != 255 {
		t.Fatalf("full identity does not end with its bump: %x", enc[len(enc)-4:])
	}
	dec := new(AgentIdentity)
	if err := decodeRecord(enc, dec); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(id, dec); diff != "" {
		t.Fatalf("identity mismatch (-want +have):\n%s", diff)
	}
	val := &ValidationRecord{EvidenceURI: strings.Repeat("e", params.MaxURILength), Passed: true}
	if len(encodeRecord(val)) != ValidationSpace {
		t.Fatal("full validation record overflowed")
	}
}

func TestRecordLayout(t *testing.T) {
	owner := common.BytesToPublicKey(bytes.Repeat([]byte{0xaa}, 32))
	rep := &AgentReputation{
		AgentID:           owner,
		TotalInteractions: 4,
		PositiveFeedback:  3,
		NegativeFeedback:  1,
		ReputationScore:   7500,
		LastUpdated:       0x0102030405060708,
		Bump:              254,
	}
	enc := encodeRecord(rep)

	disc := sha256.Sum256([]byte("account:AgentReputation"))
	if !bytes.Equal(enc[:8], disc[:8]) {
		t.Fatalf("discriminator mismatch: have %x, want %x", enc[:8], disc[:8])
	}
	if !bytes.Equal(enc[8:40], owner[:]) {
		t.Fatalf("agent id not at offset 8: %x", enc[8:40])
	}
	// total_interactions, little endian, right after the key
	if !bytes.Equal(enc[40:48], []byte{4, 0, 0, 0, 0, 0, 0, 0}) {
		t.Fatalf("total interactions encoding: %x", enc[40:48])
	}
	// reputation_score u16 LE: 7500 = 0x1d4c
	if !bytes.Equal(enc[64:66], []byte{0x4c, 0x1d}) {
		t.Fatalf("score encoding: %x", enc[64:66])
	}
	if !bytes.Equal(enc[66:74], []byte{8, 7, 6, 5, 4, 3, 2, 1}) {
		t.Fatalf("last updated encoding: %x", enc[66:74])
	}
	if enc[74] != 254 {
		t.Fatalf("bump encoding: %d", enc[74])
	}
	dec := new(AgentReputation)
	if err := decodeRecord(enc, dec); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rep, dec); diff != "" {
		t.Fatalf("reputation mismatch (-want +have):\n%s\n%s", diff, spew.Sdump(dec))
	}
}

func TestDecodeRecordFailures(t *testing.T) {
	enc := encodeRecord(&WalletLink{Bump: 1})

	if err := decodeRecord(enc[:4], new(WalletLink)); err != ErrAccountDiscriminatorNotFound {
		t.Fatalf("short data: have %v, want %v", err, ErrAccountDiscriminatorNotFound)
	}
	if err := decodeRecord(enc, new(Treasury)); err != ErrAccountDiscriminatorMismatch {
		t.Fatalf("wrong type: have %v, want %v", err, ErrAccountDiscriminatorMismatch)
	}
	if err := decodeRecord(enc[:20], new(WalletLink)); err != ErrAccountDidNotDeserialize {
		t.Fatalf("truncated: have %v, want %v", err, ErrAccountDidNotDeserialize)
	}
	// A string length running past the end of the data must not panic.
	id := encodeRecord(&AgentIdentity{})
	id[8+64] = 0xff
	if err := decodeRecord(id, new(AgentIdentity)); err != ErrAccountDidNotDeserialize {
		t.Fatalf("oversized string: have %v, want %v", err, ErrAccountDidNotDeserialize)
	}
}

func TestInstructionDiscriminators(t *testing.T) {
	for _, name := range []string{
		InitializeTreasuryName, WithdrawFeesName, RegisterAgentName, UpdateAgentName,
		GetVerifiedName, LinkWalletName, UnlinkWalletName, TransferAuthorityName,
		SubmitFeedbackName, ValidateWorkName,
	} {
		want := sha256.Sum256([]byte("global:" + name))
		have := InstructionDiscriminator(name)
		if !bytes.Equal(have[:], want[:8]) {
			t.Errorf("%s: discriminator %x, want %x", name, have, want[:8])
		}
	}
}

func TestInstructionArgumentEncoding(t *testing.T) {
	owner := common.BytesToPublicKey([]byte{7})
	ix := RegisterAgent(owner, "ipfs://x")

	want := InstructionDiscriminator(RegisterAgentName)
	if !bytes.Equal(ix.Data[:8], want[:]) {
		t.Fatalf("missing discriminator: %x", ix.Data)
	}
	if !bytes.Equal(ix.Data[8:], append([]byte{8, 0, 0, 0}, "ipfs://x"...)) {
		t.Fatalf("string argument encoding: %x", ix.Data[8:])
	}
	if ix.ProgramID != params.ProgramID {
		t.Fatalf("wrong program: %s", ix.ProgramID)
	}
}

func TestScore(t *testing.T) {
	const max = ^uint64(0)
	tests := []struct {
		positive, total uint64
		want            uint16
	}{
		{0, 0, 0},
		{1, 1, 10000},
		{1, 2, 5000},
		{3, 4, 7500},
		{2, 3, 6666},
		{1, 3, 3333},
		{0, 7, 0},
		{max - 1, max, 9999},
		{max, max, 10000},
		{max / 2, max, 4999},
	}
	for _, tt := range tests {
		if have := Score(tt.positive, tt.total); have != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.positive, tt.total, have, tt.want)
		}
	}
}
