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

// saidctl runs a local agent registry chain and sends instructions to it.
package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/probechain/go-said/core"
	"github.com/probechain/go-said/core/types"
	"github.com/probechain/go-said/crypto"
	"github.com/probechain/go-said/internal/debug"
	"github.com/probechain/go-said/log"
	"github.com/probechain/go-said/saiddb/leveldb"
	"gopkg.in/urfave/cli.v1"
)

const clientIdentifier = "saidctl"

var (
	dataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the chain database and the default keypair",
	}
	keypairFlag = cli.StringFlag{
		Name:  "keypair, k",
		Usage: "Signing keypair file (default: <datadir>/id.json)",
	}
	stateCacheFlag = cli.IntFlag{
		Name:  "cache.state",
		Usage: "Megabytes of memory allocated to the account cache",
		Value: core.DefaultConfig.StateCache,
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = clientIdentifier
	app.Usage = "agent identity, reputation and validation registry"
	app.Version = "0.1.0"
	app.Flags = append([]cli.Flag{
		configFileFlag,
		dataDirFlag,
		keypairFlag,
		stateCacheFlag,
	}, debug.Flags...)
	app.Commands = []cli.Command{
		keygenCommand,
		airdropCommand,
		transferCommand,
		balanceCommand,
		treasuryCommand,
		agentCommand,
		walletCommand,
		authorityCommand,
		feedbackCommand,
		validateCommand,
		validationCommand,
		receiptCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		debug.Setup(cfg.Log)
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".said")
	}
	return ".said"
}

// withChain opens the chain in the configured data directory for the
// duration of a command.
func withChain(fn func(ctx *cli.Context, chain *core.Chain) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Node.DataDir, 0700); err != nil {
			return err
		}
		db, err := leveldb.New(filepath.Join(cfg.Node.DataDir, "chaindata"), cfg.Node.DBCache, cfg.Node.DBHandles, false)
		if err != nil {
			return err
		}
		defer db.Close()

		chain, err := core.NewChain(db, &core.Config{
			StateCache:   cfg.Node.StateCache,
			ReceiptCache: cfg.Node.ReceiptCache,
		}, core.SystemClock())
		if err != nil {
			return err
		}
		return fn(ctx, chain)
	}
}

// keypairPath returns the signing keypair file in use.
func keypairPath(ctx *cli.Context) (string, error) {
	if file := ctx.GlobalString("keypair"); file != "" {
		return file, nil
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.Node.DataDir, "id.json"), nil
}

func loadSigner(ctx *cli.Context) (ed25519.PrivateKey, error) {
	file, err := keypairPath(ctx)
	if err != nil {
		return nil, err
	}
	key, err := crypto.LoadKeypair(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing keypair: %w", err)
	}
	return key, nil
}

// send signs and submits a single instruction transaction and prints its
// receipt.
func send(ctx *cli.Context, chain *core.Chain, ix types.Instruction, keys ...ed25519.PrivateKey) error {
	tx := types.NewTransaction(uint64(time.Now().UnixNano()), ix).Sign(keys...)
	log.Debug("Submitting transaction", "hash", tx.Hash(), "ix", chain.Registry().InstructionName(ix.Data))

	receipt, err := chain.SendTransaction(context.Background(), tx)
	if receipt != nil {
		printReceipt(ctx.App.Writer, receipt)
	}
	return err
}
