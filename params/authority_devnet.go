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

//go:build !mainnet

package params

// treasuryAuthorityKey is the base58 treasury authority. It can be replaced
// at link time with
//
//	-ldflags "-X github.com/probechain/go-said/params.treasuryAuthorityKey=<base58>"
var treasuryAuthorityKey = DevnetTreasuryAuthorityKey
