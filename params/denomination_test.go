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

import "testing"

func TestMinimumBalance(t *testing.T) {
	tests := []struct {
		space int
		want  uint64
	}{
		{0, 890_880},
		{49, 1_231_920},
		{295, 2_944_080},
	}
	for _, test := range tests {
		if have := MinimumBalance(test.space); have != test.want {
			t.Errorf("MinimumBalance(%d) = %d, want %d", test.space, have, test.want)
		}
	}
}

func TestCompiledInKeys(t *testing.T) {
	if ProgramID.IsZero() || TreasuryAuthority.IsZero() {
		t.Fatal("compiled-in keys must not be zero")
	}
	if !SystemProgramID.IsZero() {
		t.Fatal("system program must be the zero key")
	}
	if ProgramID.String() != "SAiD111111111111111111111111111111111111111" {
		t.Fatalf("unexpected program id %s", ProgramID)
	}
}

func TestTreasuryAuthority(t *testing.T) {
	if treasuryAuthorityKey == DevnetTreasuryAuthorityKey && !IsDevnetTreasury() {
		t.Fatal("devnet build not reported as devnet")
	}
	if TreasuryAuthority != parseTreasuryAuthority(treasuryAuthorityKey) {
		t.Fatalf("treasury authority %s does not match its build key", TreasuryAuthority)
	}
	for _, key := range []string{"", "not-base58-0OIl"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("parseTreasuryAuthority(%q) did not panic", key)
				}
			}()
			parseTreasuryAuthority(key)
		}()
	}
}
