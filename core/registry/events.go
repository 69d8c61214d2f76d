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
	"fmt"

	"github.com/probechain/go-said/codec"
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/crypto"
	"github.com/probechain/go-said/params"
)

// TreasuryInitialized is emitted once when the treasury is created.
type TreasuryInitialized struct {
	Treasury  common.PublicKey `cbor:"1,keyasint" json:"treasury"`
	Authority common.PublicKey `cbor:"2,keyasint" json:"authority"`
}

// FeesWithdrawn is emitted when the treasury authority withdraws fees.
type FeesWithdrawn struct {
	Treasury  common.PublicKey `cbor:"1,keyasint" json:"treasury"`
	Authority common.PublicKey `cbor:"2,keyasint" json:"authority"`
	Amount    uint64           `cbor:"3,keyasint" json:"amount"`
	Remaining uint64           `cbor:"4,keyasint" json:"remaining"`
}

// AgentRegistered is emitted when a new identity is created.
type AgentRegistered struct {
	AgentID     common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	Owner       common.PublicKey `cbor:"2,keyasint" json:"owner"`
	MetadataURI string           `cbor:"3,keyasint" json:"metadataUri"`
}

// AgentUpdated is emitted when an identity's metadata pointer changes.
type AgentUpdated struct {
	AgentID        common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	NewMetadataURI string           `cbor:"2,keyasint" json:"newMetadataUri"`
}

// AgentVerified is emitted every time an identity pays for verification.
type AgentVerified struct {
	AgentID    common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	Authority  common.PublicKey `cbor:"2,keyasint" json:"authority"`
	Fee        uint64           `cbor:"3,keyasint" json:"fee"`
	VerifiedAt int64            `cbor:"4,keyasint" json:"verifiedAt"`
}

// WalletLinked is emitted when a recovery wallet is attached.
type WalletLinked struct {
	AgentID common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	Wallet  common.PublicKey `cbor:"2,keyasint" json:"wallet"`
}

// WalletUnlinked is emitted when a link is closed.
type WalletUnlinked struct {
	AgentID  common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	Wallet   common.PublicKey `cbor:"2,keyasint" json:"wallet"`
	ClosedBy common.PublicKey `cbor:"3,keyasint" json:"closedBy"`
}

// AuthorityTransferred is emitted when a linked wallet takes over an identity.
type AuthorityTransferred struct {
	AgentID      common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	OldAuthority common.PublicKey `cbor:"2,keyasint" json:"oldAuthority"`
	NewAuthority common.PublicKey `cbor:"3,keyasint" json:"newAuthority"`
}

// FeedbackSubmitted is emitted for every review. Context is only ever
// carried here.
type FeedbackSubmitted struct {
	AgentID  common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	From     common.PublicKey `cbor:"2,keyasint" json:"from"`
	Positive bool             `cbor:"3,keyasint" json:"positive"`
	Context  string           `cbor:"4,keyasint" json:"context"`
	NewScore uint16           `cbor:"5,keyasint" json:"newScore"`
}

// WorkValidated is emitted with the full attestation.
type WorkValidated struct {
	AgentID     common.PublicKey `cbor:"1,keyasint" json:"agentId"`
	Validator   common.PublicKey `cbor:"2,keyasint" json:"validator"`
	TaskHash    common.Hash      `cbor:"3,keyasint" json:"taskHash"`
	Passed      bool             `cbor:"4,keyasint" json:"passed"`
	EvidenceURI string           `cbor:"5,keyasint" json:"evidenceUri"`
}

// eventTypes maps every event topic to a constructor for its payload.
var eventTypes = map[common.Hash]func() interface{}{}

func init() {
	for _, f := range []func() interface{}{
		func() interface{} { return new(TreasuryInitialized) },
		func() interface{} { return new(FeesWithdrawn) },
		func() interface{} { return new(AgentRegistered) },
		func() interface{} { return new(AgentUpdated) },
		func() interface{} { return new(AgentVerified) },
		func() interface{} { return new(WalletLinked) },
		func() interface{} { return new(WalletUnlinked) },
		func() interface{} { return new(AuthorityTransferred) },
		func() interface{} { return new(FeedbackSubmitted) },
		func() interface{} { return new(WorkValidated) },
	} {
		eventTypes[EventTopic(eventName(f()))] = f
	}
}

// EventTopic returns the topic identifying events of the given name.
func EventTopic(name string) common.Hash {
	return crypto.Sha256Hash([]byte("event:" + name))
}

func eventName(ev interface{}) string {
	// Payloads are always pointers to one of the event structs above.
	name := fmt.Sprintf("%T", ev)
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

// emit appends an event to the transaction's log.
func emit(ctx *vm.Context, ev interface{}) {
	ctx.State.AddLog(&types.Log{
		Address: params.ProgramID,
		Topics:  []common.Hash{EventTopic(eventName(ev))},
		Data:    codec.MustMarshal(ev),
	})
}

// DecodeEvent parses a registry log into its event struct and returns the
// event name alongside it.
func DecodeEvent(l *types.Log) (string, interface{}, error) {
	if l.Address != params.ProgramID || len(l.Topics) == 0 {
		return "", nil, fmt.Errorf("log not emitted by the registry")
	}
	f, ok := eventTypes[l.Topics[0]]
	if !ok {
		return "", nil, fmt.Errorf("unknown event topic %s", l.Topics[0])
	}
	ev := f()
	if err := codec.Unmarshal(l.Data, ev); err != nil {
		return "", nil, err
	}
	return eventName(ev), ev, nil
}
