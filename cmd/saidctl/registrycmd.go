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
	"fmt"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core"
	"github.com/probechain/go-said/core/registry"
	"github.com/probechain/go-said/crypto"
	"github.com/probechain/go-said/params"
	"gopkg.in/urfave/cli.v1"
)

var (
	identityFlag = cli.StringFlag{
		Name:  "identity",
		Usage: "Identity address (default: the identity registered by the signer)",
	}
	contextFlag = cli.StringFlag{
		Name:  "context",
		Usage: "Free-form note attached to the feedback event",
	}
	evidenceFlag = cli.StringFlag{
		Name:  "evidence",
		Usage: "URI of the evidence backing the verdict",
	}

	treasuryCommand = cli.Command{
		Name:     "treasury",
		Usage:    "Manage the fee treasury",
		Category: "REGISTRY COMMANDS",
		Subcommands: []cli.Command{
			{
				Action: withChain(treasuryInit),
				Name:   "init",
				Usage:  "Create the treasury (treasury authority only)",
			},
			{
				Action:    withChain(treasuryWithdraw),
				Name:      "withdraw",
				Usage:     "Withdraw collected fees (treasury authority only)",
				ArgsUsage: "<lamports>",
			},
			{
				Action: withChain(treasuryShow),
				Name:   "show",
				Usage:  "Show the treasury state",
			},
		},
	}
	agentCommand = cli.Command{
		Name:     "agent",
		Usage:    "Manage agent identities",
		Category: "REGISTRY COMMANDS",
		Subcommands: []cli.Command{
			{
				Action:    withChain(agentRegister),
				Name:      "register",
				Usage:     "Register an identity owned by the signer",
				ArgsUsage: "<metadata-uri>",
			},
			{
				Action:    withChain(agentUpdate),
				Name:      "update",
				Usage:     "Replace the metadata URI of an identity",
				ArgsUsage: "<metadata-uri>",
				Flags:     []cli.Flag{identityFlag},
			},
			{
				Action: withChain(agentVerify),
				Name:   "verify",
				Usage:  "Pay the verification fee and mark an identity verified",
				Flags:  []cli.Flag{identityFlag},
			},
			{
				Action:    withChain(agentShow),
				Name:      "show",
				Usage:     "Show an identity and its reputation",
				ArgsUsage: "[owner]",
				Flags:     []cli.Flag{identityFlag},
			},
		},
	}
	walletCommand = cli.Command{
		Name:     "wallet",
		Usage:    "Manage wallets linked to identities",
		Category: "REGISTRY COMMANDS",
		Subcommands: []cli.Command{
			{
				Action:    withChain(walletLink),
				Name:      "link",
				Usage:     "Link a wallet to an identity, signed by both",
				ArgsUsage: "<wallet-keypair-file>",
				Flags:     []cli.Flag{identityFlag},
			},
			{
				Action:    withChain(walletUnlink),
				Name:      "unlink",
				Usage:     "Remove a wallet link, refunding its rent to the signer",
				ArgsUsage: "<wallet>",
			},
			{
				Action:    withChain(walletResolve),
				Name:      "resolve",
				Usage:     "Show the identity a wallet is linked to",
				ArgsUsage: "<wallet>",
			},
		},
	}
	authorityCommand = cli.Command{
		Name:     "authority",
		Usage:    "Recover control of an identity",
		Category: "REGISTRY COMMANDS",
		Subcommands: []cli.Command{
			{
				Action:    withChain(authorityTransfer),
				Name:      "transfer",
				Usage:     "Make the signer, a linked wallet, the identity's authority",
				ArgsUsage: "<identity>",
			},
		},
	}
	feedbackCommand = cli.Command{
		Action:    withChain(feedback),
		Name:      "feedback",
		Usage:     "Submit feedback about an identity",
		ArgsUsage: "<identity> positive|negative",
		Flags:     []cli.Flag{contextFlag},
		Category:  "REGISTRY COMMANDS",
	}
	validateCommand = cli.Command{
		Action:    withChain(validate),
		Name:      "validate",
		Usage:     "Attest the outcome of a task",
		ArgsUsage: "<identity> <task> passed|failed",
		Flags:     []cli.Flag{evidenceFlag},
		Category:  "REGISTRY COMMANDS",
		Description: `The task is either a 32 byte hex hash or any text, which is then
hashed with SHA-256.`,
	}
	validationCommand = cli.Command{
		Name:     "validation",
		Usage:    "Inspect validation records",
		Category: "REGISTRY COMMANDS",
		Subcommands: []cli.Command{
			{
				Action:    withChain(validationShow),
				Name:      "show",
				Usage:     "Show the attestation of a task",
				ArgsUsage: "<identity> <task>",
			},
		},
	}
)

// identityOf returns the identity named by --identity, or the one owned by
// owner.
func identityOf(ctx *cli.Context, owner common.PublicKey) (common.PublicKey, error) {
	if s := ctx.String(identityFlag.Name); s != "" {
		return common.Base58ToPublicKey(s)
	}
	addr, _ := registry.IdentityAddress(owner)
	return addr, nil
}

func parseTask(s string) common.Hash {
	var h common.Hash
	if err := h.UnmarshalText([]byte(s)); err == nil {
		return h
	}
	return crypto.Sha256Hash([]byte(s))
}

func parseVerdict(s, yes, no string) (bool, error) {
	switch s {
	case yes:
		return true, nil
	case no:
		return false, nil
	}
	return false, fmt.Errorf("expected %s or %s, got %q", yes, no, s)
}

func treasuryInit(ctx *cli.Context, chain *core.Chain) error {
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	return send(ctx, chain, registry.InitializeTreasury(crypto.PubkeyOf(key)), key)
}

func treasuryWithdraw(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	amount, err := parseLamports(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	return send(ctx, chain, registry.WithdrawFees(crypto.PubkeyOf(key), amount), key)
}

func treasuryShow(ctx *cli.Context, chain *core.Chain) error {
	reader := chain.Reader()
	t, addr, err := reader.Treasury()
	if err != nil {
		return err
	}
	printFields(ctx.App.Writer, [][2]string{
		{"treasury", addr.String()},
		{"authority", t.Authority.String()},
		{"balance", formatLamports(reader.TreasuryBalance())},
		{"reserve", formatLamports(params.MinimumBalance(registry.TreasurySpace))},
		{"collected", formatLamports(t.TotalCollected)},
	})
	return nil
}

func agentRegister(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	owner := crypto.PubkeyOf(key)
	if err := send(ctx, chain, registry.RegisterAgent(owner, ctx.Args().Get(0)), key); err != nil {
		return err
	}
	identity, _ := registry.IdentityAddress(owner)
	fmt.Fprintf(ctx.App.Writer, "Identity %s\n", identity)
	return nil
}

func agentUpdate(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	authority := crypto.PubkeyOf(key)
	identity, err := identityOf(ctx, authority)
	if err != nil {
		return err
	}
	return send(ctx, chain, registry.UpdateAgent(identity, authority, ctx.Args().Get(0)), key)
}

func agentVerify(ctx *cli.Context, chain *core.Chain) error {
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	authority := crypto.PubkeyOf(key)
	identity, err := identityOf(ctx, authority)
	if err != nil {
		return err
	}
	return send(ctx, chain, registry.GetVerified(identity, authority), key)
}

func agentShow(ctx *cli.Context, chain *core.Chain) error {
	owner, err := addressArg(ctx, 0)
	if err != nil && ctx.String(identityFlag.Name) == "" {
		return err
	}
	identity, err := identityOf(ctx, owner)
	if err != nil {
		return err
	}
	reader := chain.Reader()
	id, err := reader.IdentityAt(identity)
	if err != nil {
		return err
	}
	fields := identityFields(identity, id)
	if rep, err := reader.Reputation(identity); err == nil {
		fields = append(fields, reputationFields(rep)...)
	}
	printFields(ctx.App.Writer, fields)
	return nil
}

func walletLink(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	walletKey, err := crypto.LoadKeypair(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	authority := crypto.PubkeyOf(key)
	identity, err := identityOf(ctx, authority)
	if err != nil {
		return err
	}
	return send(ctx, chain, registry.LinkWallet(identity, authority, crypto.PubkeyOf(walletKey)), key, walletKey)
}

func walletUnlink(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	wallet, err := common.Base58ToPublicKey(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	link, _, err := chain.Reader().ResolveWallet(wallet)
	if err != nil {
		return err
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	return send(ctx, chain, registry.UnlinkWallet(link.AgentID, wallet, crypto.PubkeyOf(key)), key)
}

func walletResolve(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	wallet, err := common.Base58ToPublicKey(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	link, id, err := chain.Reader().ResolveWallet(wallet)
	if err != nil {
		return err
	}
	fields := [][2]string{{"wallet", link.Wallet.String()}}
	printFields(ctx.App.Writer, append(fields, identityFields(link.AgentID, id)...))
	return nil
}

func authorityTransfer(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	identity, err := common.Base58ToPublicKey(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	return send(ctx, chain, registry.TransferAuthority(identity, crypto.PubkeyOf(key)), key)
}

func feedback(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 2 {
		return errWrongArgs
	}
	identity, err := common.Base58ToPublicKey(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	positive, err := parseVerdict(ctx.Args().Get(1), "positive", "negative")
	if err != nil {
		return err
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	ix := registry.SubmitFeedback(identity, crypto.PubkeyOf(key), positive, ctx.String(contextFlag.Name))
	return send(ctx, chain, ix, key)
}

func validate(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 3 {
		return errWrongArgs
	}
	identity, err := common.Base58ToPublicKey(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	passed, err := parseVerdict(ctx.Args().Get(2), "passed", "failed")
	if err != nil {
		return err
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	task := parseTask(ctx.Args().Get(1))
	ix := registry.ValidateWork(identity, crypto.PubkeyOf(key), task, passed, ctx.String(evidenceFlag.Name))
	return send(ctx, chain, ix, key)
}

func validationShow(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 2 {
		return errWrongArgs
	}
	identity, err := common.Base58ToPublicKey(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	rec, err := chain.Reader().Validation(identity, parseTask(ctx.Args().Get(1)))
	if err != nil {
		return err
	}
	printFields(ctx.App.Writer, validationFields(rec))
	return nil
}
