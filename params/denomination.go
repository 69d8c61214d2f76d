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

// These are the multipliers for native value denominations.
// Example: To get the lamport value of an amount in whole tokens, use
//
//    amount * params.LamportsPerSol
//
const (
	Lamport        = 1
	LamportsPerSol = 1_000_000_000
)

// Rent parameters. An account must hold at least MinimumBalance(space)
// lamports to exist.
const (
	// AccountStorageOverhead is the per-account bookkeeping cost, in bytes,
	// charged on top of the data length.
	AccountStorageOverhead = 128

	// LamportsPerByteYear is the rent rate.
	LamportsPerByteYear = 3480

	// ExemptionThresholdYears is how many years of rent make an account
	// exempt.
	ExemptionThresholdYears = 2
)

// MinimumBalance returns the rent-exempt minimum for an account holding
// space bytes of data.
func MinimumBalance(space int) uint64 {
	return uint64(AccountStorageOverhead+space) * LamportsPerByteYear * ExemptionThresholdYears
}
