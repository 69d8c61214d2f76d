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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/probechain/go-said/core/registry"
	"github.com/probechain/go-said/core/types"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	keyColor  = color.New(color.FgCyan)
)

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// printFields renders key/value pairs as a two column table.
func printFields(w io.Writer, fields [][2]string) {
	table := newTable(w)
	table.SetColumnSeparator("")
	for _, f := range fields {
		table.Append([]string{keyColor.Sprint(f[0]), f[1]})
	}
	table.Render()
}

func printReceipt(w io.Writer, r *types.Receipt) {
	status := okColor.Sprint("success")
	if !r.Succeeded() {
		status = failColor.Sprint("failed")
	}
	fmt.Fprintf(w, "Transaction %s %s\n", r.TxHash.Hex(), status)
	if r.Err != "" {
		fmt.Fprintf(w, "  error: %s\n", r.Err)
	}
	if len(r.Logs) == 0 {
		return
	}
	table := newTable(w)
	table.SetHeader([]string{"#", "Event", "Fields"})
	for _, l := range r.Logs {
		name, ev, err := registry.DecodeEvent(l)
		if err != nil {
			table.Append([]string{strconv.FormatUint(uint64(l.Index), 10), "?", err.Error()})
			continue
		}
		fields, _ := json.Marshal(ev)
		table.Append([]string{strconv.FormatUint(uint64(l.Index), 10), name, string(fields)})
	}
	table.Render()
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

func formatLamports(v uint64) string {
	return strconv.FormatUint(v, 10) + " lamports"
}

func identityFields(addr fmt.Stringer, id *registry.AgentIdentity) [][2]string {
	verified := "no"
	if id.IsVerified && id.VerifiedAt != nil {
		verified = okColor.Sprint("yes") + " (" + formatTime(*id.VerifiedAt) + ")"
	}
	return [][2]string{
		{"identity", addr.String()},
		{"owner", id.Owner.String()},
		{"authority", id.Authority.String()},
		{"metadata", id.MetadataURI},
		{"created", formatTime(id.CreatedAt)},
		{"verified", verified},
	}
}

func reputationFields(rep *registry.AgentReputation) [][2]string {
	return [][2]string{
		{"score", fmt.Sprintf("%d.%02d%%", rep.ReputationScore/100, rep.ReputationScore%100)},
		{"interactions", strconv.FormatUint(rep.TotalInteractions, 10)},
		{"positive", strconv.FormatUint(rep.PositiveFeedback, 10)},
		{"negative", strconv.FormatUint(rep.NegativeFeedback, 10)},
		{"updated", formatTime(rep.LastUpdated)},
	}
}

func validationFields(rec *registry.ValidationRecord) [][2]string {
	verdict := failColor.Sprint("failed")
	if rec.Passed {
		verdict = okColor.Sprint("passed")
	}
	return [][2]string{
		{"identity", rec.AgentID.String()},
		{"task", rec.TaskHash.Hex()},
		{"validator", rec.Validator.String()},
		{"verdict", verdict},
		{"evidence", rec.EvidenceURI},
		{"timestamp", formatTime(rec.Timestamp)},
	}
}
