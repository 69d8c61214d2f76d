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

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/crypto"
	"github.com/probechain/go-said/params"
)

// Persisted record sizes, discriminator included.
const (
	TreasurySpace   = params.DiscriminatorLength + 32 + 8 + 1
	IdentitySpace   = params.DiscriminatorLength + 32 + 32 + (4 + params.MaxURILength) + 8 + 1 + (1 + 8) + 1
	WalletLinkSpace = params.DiscriminatorLength + 32 + 32 + 1
	ReputationSpace = params.DiscriminatorLength + 32 + 8 + 8 + 8 + 2 + 8 + 1
	ValidationSpace = params.DiscriminatorLength + 32 + 32 + 32 + 1 + (4 + params.MaxURILength) + 8 + 1
)

// Discriminator is the 8 byte tag that prefixes records and instructions.
type Discriminator [params.DiscriminatorLength]byte

func discriminator(namespace, name string) (d Discriminator) {
	h := crypto.Sha256Hash([]byte(namespace + ":" + name))
	copy(d[:], h[:params.DiscriminatorLength])
	return d
}

// record is implemented by every registry account type.
type record interface {
	recordName() string
	space() int
	encode(*encoder)
	decode(*decoder)
}

// Treasury accumulates verification fees.
type Treasury struct {
	Authority      common.PublicKey
	TotalCollected uint64 // lifetime intake, never decremented
	Bump           uint8
}

// AgentIdentity is the permanent record of one registered agent.
type AgentIdentity struct {
	Owner       common.PublicKey
	Authority   common.PublicKey
	MetadataURI string
	CreatedAt   int64
	IsVerified  bool
	VerifiedAt  *int64
	Bump        uint8
}

// WalletLink associates a secondary wallet with an identity it may recover.
type WalletLink struct {
	AgentID common.PublicKey
	Wallet  common.PublicKey
	Bump    uint8
}

// AgentReputation aggregates feedback for one identity.
type AgentReputation struct {
	AgentID           common.PublicKey
	TotalInteractions uint64
	PositiveFeedback  uint64
	NegativeFeedback  uint64
	ReputationScore   uint16 // basis points, 0-10000
	LastUpdated       int64
	Bump              uint8
}

// ValidationRecord is an immutable attestation about one task.
type ValidationRecord struct {
	AgentID     common.PublicKey
	Validator   common.PublicKey
	TaskHash    common.Hash
	Passed      bool
	EvidenceURI string
	Timestamp   int64
	Bump        uint8
}

func (*Treasury) recordName() string         { return "Treasury" }
func (*AgentIdentity) recordName() string    { return "AgentIdentity" }
func (*WalletLink) recordName() string       { return "WalletLink" }
func (*AgentReputation) recordName() string  { return "AgentReputation" }
func (*ValidationRecord) recordName() string { return "ValidationRecord" }

func (*Treasury) space() int         { return TreasurySpace }
func (*AgentIdentity) space() int    { return IdentitySpace }
func (*WalletLink) space() int       { return WalletLinkSpace }
func (*AgentReputation) space() int  { return ReputationSpace }
func (*ValidationRecord) space() int { return ValidationSpace }

func (r *Treasury) encode(e *encoder) {
	e.key(r.Authority)
	e.u64(r.TotalCollected)
	e.u8(r.Bump)
}

func (r *Treasury) decode(d *decoder) {
	r.Authority = d.key()
	r.TotalCollected = d.u64()
	r.Bump = d.u8()
}

func (r *AgentIdentity) encode(e *encoder) {
	e.key(r.Owner)
	e.key(r.Authority)
	e.string(r.MetadataURI)
	e.i64(r.CreatedAt)
	e.bool(r.IsVerified)
	e.optionI64(r.VerifiedAt)
	e.u8(r.Bump)
}

func (r *AgentIdentity) decode(d *decoder) {
	r.Owner = d.key()
	r.Authority = d.key()
	r.MetadataURI = d.string()
	r.CreatedAt = d.i64()
	r.IsVerified = d.bool()
	r.VerifiedAt = d.optionI64()
	r.Bump = d.u8()
}

func (r *WalletLink) encode(e *encoder) {
	e.key(r.AgentID)
	e.key(r.Wallet)
	e.u8(r.Bump)
}

func (r *WalletLink) decode(d *decoder) {
	r.AgentID = d.key()
	r.Wallet = d.key()
	r.Bump = d.u8()
}

func (r *AgentReputation) encode(e *encoder) {
	e.key(r.AgentID)
	e.u64(r.TotalInteractions)
	e.u64(r.PositiveFeedback)
	e.u64(r.NegativeFeedback)
	e.u16(r.ReputationScore)
	e.i64(r.LastUpdated)
	e.u8(r.Bump)
}

func (r *AgentReputation) decode(d *decoder) {
	r.AgentID = d.key()
	r.TotalInteractions = d.u64()
	r.PositiveFeedback = d.u64()
	r.NegativeFeedback = d.u64()
	r.ReputationScore = d.u16()
	r.LastUpdated = d.i64()
	r.Bump = d.u8()
}

func (r *ValidationRecord) encode(e *encoder) {
	e.key(r.AgentID)
	e.key(r.Validator)
	e.hash(r.TaskHash)
	e.bool(r.Passed)
	e.string(r.EvidenceURI)
	e.i64(r.Timestamp)
	e.u8(r.Bump)
}

func (r *ValidationRecord) decode(d *decoder) {
	r.AgentID = d.key()
	r.Validator = d.key()
	r.TaskHash = d.hash()
	r.Passed = d.bool()
	r.EvidenceURI = d.string()
	r.Timestamp = d.i64()
	r.Bump = d.u8()
}

// encodeRecord lays out discriminator || fields, zero padded to the record
// space. Callers enforce the string caps beforehand, so the fields always fit.
func encodeRecord(r record) []byte {
	disc := discriminator("account", r.recordName())
	e := &encoder{buf: make([]byte, 0, r.space())}
	e.buf = append(e.buf, disc[:]...)
	r.encode(e)
	if len(e.buf) > r.space() {
		panic("registry: " + r.recordName() + " exceeds its space")
	}
	out := make([]byte, r.space())
	copy(out, e.buf)
	return out
}

// decodeRecord parses data produced by encodeRecord. Padding after the
// fields is ignored.
func decodeRecord(data []byte, r record) error {
	if len(data) < params.DiscriminatorLength {
		return ErrAccountDiscriminatorNotFound
	}
	disc := discriminator("account", r.recordName())
	if !bytes.Equal(data[:params.DiscriminatorLength], disc[:]) {
		return ErrAccountDiscriminatorMismatch
	}
	d := &decoder{buf: data[params.DiscriminatorLength:]}
	r.decode(d)
	if d.err != nil {
		return ErrAccountDidNotDeserialize
	}
	return nil
}
