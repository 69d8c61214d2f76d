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

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type shortKey string

func (k shortKey) TerminalString() string { return string(k[:4]) + ".." }
func (k shortKey) String() string         { return string(k) }

func TestTerminalHandlerFormat(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, LevelInfo, false))
	l.Info("Agent registered", "owner", shortKey("4qCJbVMTWMB1"), "fee", uint64(10), "err", errors.New("a b"))

	have := out.String()
	if !strings.HasPrefix(have, "INFO [") {
		t.Fatalf("unexpected prefix: %q", have)
	}
	for _, want := range []string{"Agent registered", "owner=4qCJ..", "fee=10", `err="a b"`} {
		if !strings.Contains(have, want) {
			t.Errorf("output %q missing %q", have, want)
		}
	}
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, LevelWarn, false))
	l.Info("dropped")
	l.Debug("dropped")
	l.Warn("kept")
	if have := out.String(); strings.Contains(have, "dropped") || !strings.Contains(have, "kept") {
		t.Fatalf("level filtering failed: %q", have)
	}
}

func TestTerminalHandlerWith(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false)).With("tx", "abc")
	l.Debug("Executing instruction", "index", 0)
	if have := out.String(); !strings.Contains(have, "tx=abc") || !strings.Contains(have, "index=0") {
		t.Fatalf("missing context attributes: %q", have)
	}
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Info("Fees withdrawn", "authority", shortKey("4qCJbVMTWMB1"))

	var rec map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json %q: %v", out.String(), err)
	}
	if rec["lvl"] != "info" {
		t.Errorf("lvl = %v, want info", rec["lvl"])
	}
	if rec["authority"] != "4qCJbVMTWMB1" {
		t.Errorf("authority = %v, want full key", rec["authority"])
	}
}

func TestFromVerbosity(t *testing.T) {
	tests := map[int]string{0: "crit", 1: "error", 2: "warn", 3: "info", 4: "debug", 5: "trace", 9: "trace"}
	for v, want := range tests {
		if have := LevelString(FromVerbosity(v)); have != want {
			t.Errorf("FromVerbosity(%d) = %s, want %s", v, have, want)
		}
	}
}

func TestRootDiscardsByDefault(t *testing.T) {
	if Root().Enabled(context.Background(), LevelCrit) {
		t.Fatal("default root logger should discard everything")
	}
}
