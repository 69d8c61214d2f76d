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

package params

import (
	"fmt"

	"github.com/probechain/go-said/common"
)

// DevnetTreasuryAuthorityKey is the treasury authority of devnet and test
// builds. Its private key is derived from a published seed, so anyone can
// sign for it. Builds with the mainnet tag never fall back to it.
const DevnetTreasuryAuthorityKey = "4qCJbVMTWMB1wpVYKC2EwQ3DUPN1vCd14EX1VQurF6Ar"

// Compiled-in protocol identities. These are build-time constants and are
// never read from configuration or state.
var (
	// ProgramID is the address of the registry program. Every registry
	// record is owned by it and derived from it.
	ProgramID = common.MustBase58ToPublicKey("SAiD111111111111111111111111111111111111111")

	// SystemProgramID owns plain wallets and creates accounts.
	SystemProgramID = common.PublicKey{}

	// TreasuryAuthority is the only key allowed to create the treasury and
	// withdraw collected fees. It is fixed at build time, see
	// treasuryAuthorityKey.
	TreasuryAuthority = parseTreasuryAuthority(treasuryAuthorityKey)
)

// IsDevnetTreasury reports whether the binary was built with the public
// devnet treasury authority.
func IsDevnetTreasury() bool {
	return treasuryAuthorityKey == DevnetTreasuryAuthorityKey
}

func parseTreasuryAuthority(key string) common.PublicKey {
	if key == "" {
		panic("params: treasury authority not set, build with -ldflags \"-X github.com/probechain/go-said/params.treasuryAuthorityKey=<base58>\"")
	}
	pub, err := common.Base58ToPublicKey(key)
	if err != nil {
		panic(fmt.Sprintf("params: invalid treasury authority %q: %v", key, err))
	}
	return pub
}

const (
	// VerificationFee is charged to an identity's authority on every
	// verification request (0.01 SOL-equivalent).
	VerificationFee uint64 = 10_000_000 // lamports

	// MaxURILength caps metadata and evidence pointers, in bytes.
	MaxURILength = 200

	// DiscriminatorLength prefixes every persisted record and instruction.
	DiscriminatorLength = 8
)

// Seeds used to derive registry record addresses.
var (
	TreasurySeed   = []byte("treasury")
	AgentSeed      = []byte("agent")
	WalletSeed     = []byte("wallet")
	ReputationSeed = []byte("reputation")
	ValidationSeed = []byte("validation")
)
