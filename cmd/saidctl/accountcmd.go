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
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/probechain/go-said/common"
	"github.com/probechain/go-said/core"
	"github.com/probechain/go-said/core/vm"
	"github.com/probechain/go-said/crypto"
	"gopkg.in/urfave/cli.v1"
)

var (
	errWrongArgs = errors.New("wrong number of arguments")

	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Keypair file to write (default: the signing keypair path)",
	}
	forceFlag = cli.BoolFlag{
		Name:  "force",
		Usage: "Overwrite an existing keypair file",
	}
	mnemonicFlag = cli.BoolFlag{
		Name:  "mnemonic",
		Usage: "Derive the keypair from a new recovery phrase and print the phrase",
	}
	recoverFlag = cli.StringFlag{
		Name:  "recover",
		Usage: "Derive the keypair from an existing recovery phrase",
	}
	passphraseFlag = cli.StringFlag{
		Name:  "passphrase",
		Usage: "Optional BIP-39 passphrase used with --mnemonic or --recover",
	}

	keygenCommand = cli.Command{
		Action:    keygen,
		Name:      "keygen",
		Usage:     "Generate a new ed25519 keypair",
		ArgsUsage: "",
		Flags:     []cli.Flag{outFlag, forceFlag, mnemonicFlag, recoverFlag, passphraseFlag},
		Category:  "ACCOUNT COMMANDS",
	}
	airdropCommand = cli.Command{
		Action:    withChain(airdrop),
		Name:      "airdrop",
		Usage:     "Credit lamports to an address on the local chain",
		ArgsUsage: "<lamports> [address]",
		Category:  "ACCOUNT COMMANDS",
	}
	transferCommand = cli.Command{
		Action:    withChain(transfer),
		Name:      "transfer",
		Usage:     "Send lamports from the signing keypair",
		ArgsUsage: "<to> <lamports>",
		Category:  "ACCOUNT COMMANDS",
	}
	balanceCommand = cli.Command{
		Action:    withChain(balance),
		Name:      "balance",
		Usage:     "Show the lamports held by an address",
		ArgsUsage: "[address]",
		Category:  "ACCOUNT COMMANDS",
	}
	receiptCommand = cli.Command{
		Action:    withChain(showReceipt),
		Name:      "receipt",
		Usage:     "Show the receipt of a processed transaction",
		ArgsUsage: "<hash>",
		Category:  "ACCOUNT COMMANDS",
	}
)

func keygen(ctx *cli.Context) error {
	file := ctx.String(outFlag.Name)
	if file == "" {
		var err error
		if file, err = keypairPath(ctx); err != nil {
			return err
		}
	}
	if _, err := os.Stat(file); err == nil && !ctx.Bool(forceFlag.Name) {
		return fmt.Errorf("keypair file %s already exists", file)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}
	key, phrase, err := newKey(ctx)
	if err != nil {
		return err
	}
	if err := crypto.SaveKeypair(file, key); err != nil {
		return err
	}
	fields := [][2]string{
		{"pubkey", crypto.PubkeyOf(key).String()},
		{"file", file},
	}
	if phrase != "" {
		fields = append(fields, [2]string{"mnemonic", phrase})
	}
	printFields(ctx.App.Writer, fields)
	return nil
}

// newKey creates the keypair requested by the keygen flags. The phrase is
// returned only when a new one was generated.
func newKey(ctx *cli.Context) (ed25519.PrivateKey, string, error) {
	passphrase := ctx.String(passphraseFlag.Name)
	switch {
	case ctx.IsSet(recoverFlag.Name) && ctx.Bool(mnemonicFlag.Name):
		return nil, "", errors.New("--mnemonic and --recover are mutually exclusive")
	case ctx.IsSet(recoverFlag.Name):
		key, err := crypto.KeyFromMnemonic(ctx.String(recoverFlag.Name), passphrase)
		return key, "", err
	case ctx.Bool(mnemonicFlag.Name):
		phrase, err := crypto.NewMnemonic()
		if err != nil {
			return nil, "", err
		}
		key, err := crypto.KeyFromMnemonic(phrase, passphrase)
		return key, phrase, err
	default:
		key, err := crypto.GenerateKey()
		return key, "", err
	}
}

// addressArg parses the positional argument at i, defaulting to the signing
// keypair's address when it is absent.
func addressArg(ctx *cli.Context, i int) (common.PublicKey, error) {
	if ctx.NArg() > i {
		return common.Base58ToPublicKey(ctx.Args().Get(i))
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return common.PublicKey{}, err
	}
	return crypto.PubkeyOf(key), nil
}

func parseLamports(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lamport amount %q", s)
	}
	return v, nil
}

func airdrop(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() < 1 || ctx.NArg() > 2 {
		return errWrongArgs
	}
	amount, err := parseLamports(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	addr, err := addressArg(ctx, 1)
	if err != nil {
		return err
	}
	if err := chain.Airdrop(addr, amount); err != nil {
		return err
	}
	printFields(ctx.App.Writer, [][2]string{
		{"address", addr.String()},
		{"balance", formatLamports(chain.Balance(addr))},
	})
	return nil
}

func transfer(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 2 {
		return errWrongArgs
	}
	to, err := common.Base58ToPublicKey(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	amount, err := parseLamports(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	key, err := loadSigner(ctx)
	if err != nil {
		return err
	}
	return send(ctx, chain, vm.TransferInstruction(crypto.PubkeyOf(key), to, amount), key)
}

func balance(ctx *cli.Context, chain *core.Chain) error {
	addr, err := addressArg(ctx, 0)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, formatLamports(chain.Balance(addr)))
	return nil
}

func showReceipt(ctx *cli.Context, chain *core.Chain) error {
	if ctx.NArg() != 1 {
		return errWrongArgs
	}
	var hash common.Hash
	if err := hash.UnmarshalText([]byte(ctx.Args().Get(0))); err != nil {
		return fmt.Errorf("invalid transaction hash: %v", err)
	}
	receipt := chain.Receipt(hash)
	if receipt == nil {
		return fmt.Errorf("transaction %s not found", hash.Hex())
	}
	printReceipt(ctx.App.Writer, receipt)
	return nil
}
