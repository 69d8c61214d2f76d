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

package types

import (
	"crypto/ed25519"
	"errors"

	mapset "github.com/deckarep/golang-set"
	"github.com/probechain/go-said/codec"
	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/crypto"
)

var (
	ErrInvalidSig    = errors.New("invalid transaction signature")
	ErrNoInstruction = errors.New("transaction carries no instructions")
)

// AccountMeta names an account an instruction touches and the role it plays.
type AccountMeta struct {
	PublicKey  common.PublicKey `cbor:"1,keyasint" json:"pubkey"`
	IsSigner   bool             `cbor:"2,keyasint" json:"isSigner"`
	IsWritable bool             `cbor:"3,keyasint" json:"isWritable"`
}

// Meta is a shorthand constructor for AccountMeta.
func Meta(key common.PublicKey, signer, writable bool) AccountMeta {
	return AccountMeta{PublicKey: key, IsSigner: signer, IsWritable: writable}
}

// Instruction is a single program invocation.
type Instruction struct {
	ProgramID common.PublicKey `cbor:"1,keyasint" json:"programId"`
	Accounts  []AccountMeta    `cbor:"2,keyasint" json:"accounts"`
	Data      []byte           `cbor:"3,keyasint" json:"data"`
}

// Message is the signed part of a transaction.
type Message struct {
	Nonce        uint64        `cbor:"1,keyasint" json:"nonce"`
	Instructions []Instruction `cbor:"2,keyasint" json:"instructions"`
}

// Signature binds one signer to the message.
type Signature struct {
	Signer common.PublicKey `cbor:"1,keyasint" json:"signer"`
	Sig    []byte           `cbor:"2,keyasint" json:"sig"`
}

// Transaction is an ordered list of instructions executed atomically.
type Transaction struct {
	Message    Message     `cbor:"1,keyasint" json:"message"`
	Signatures []Signature `cbor:"2,keyasint" json:"signatures"`
}

// NewTransaction creates an unsigned transaction. The nonce only serves to
// distinguish otherwise identical messages.
func NewTransaction(nonce uint64, ixs ...Instruction) *Transaction {
	return &Transaction{Message: Message{Nonce: nonce, Instructions: ixs}}
}

// SigningBytes returns the canonical message encoding that signers sign.
func (tx *Transaction) SigningBytes() []byte {
	return codec.MustMarshal(&tx.Message)
}

// Hash returns the transaction hash, the Keccak256 digest of the message.
func (tx *Transaction) Hash() common.Hash {
	return crypto.Keccak256Hash(tx.SigningBytes())
}

// Sign adds signatures by the given keys over the message. Signing again with
// a key that already signed replaces its signature.
func (tx *Transaction) Sign(keys ...ed25519.PrivateKey) *Transaction {
	msg := tx.SigningBytes()
	for _, key := range keys {
		sig := Signature{Signer: crypto.PubkeyOf(key), Sig: crypto.Sign(key, msg)}
		replaced := false
		for i := range tx.Signatures {
			if tx.Signatures[i].Signer == sig.Signer {
				tx.Signatures[i], replaced = sig, true
			}
		}
		if !replaced {
			tx.Signatures = append(tx.Signatures, sig)
		}
	}
	return tx
}

// RequiredSigners returns every key marked as signer by any instruction, in
// order of first appearance.
func (tx *Transaction) RequiredSigners() []common.PublicKey {
	var (
		seen = mapset.NewSet()
		keys []common.PublicKey
	)
	for _, ix := range tx.Message.Instructions {
		for _, meta := range ix.Accounts {
			if meta.IsSigner && seen.Add(meta.PublicKey) {
				keys = append(keys, meta.PublicKey)
			}
		}
	}
	return keys
}

// Signers verifies every attached signature and returns the set of keys that
// validly signed the message.
func (tx *Transaction) Signers() (mapset.Set, error) {
	if len(tx.Message.Instructions) == 0 {
		return nil, ErrNoInstruction
	}
	var (
		msg     = tx.SigningBytes()
		signers = mapset.NewSet()
	)
	for _, sig := range tx.Signatures {
		if !crypto.VerifySignature(sig.Signer, msg, sig.Sig) {
			return nil, ErrInvalidSig
		}
		signers.Add(sig.Signer)
	}
	return signers, nil
}

// EncodeTransaction returns the wire form of a transaction.
func EncodeTransaction(tx *Transaction) ([]byte, error) {
	return codec.Marshal(tx)
}

// DecodeTransaction parses a transaction produced by EncodeTransaction.
func DecodeTransaction(blob []byte) (*Transaction, error) {
	tx := new(Transaction)
	if err := codec.Unmarshal(blob, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
