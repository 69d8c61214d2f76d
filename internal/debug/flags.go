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

// Package debug configures the root logger from command line flags.
package debug

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/probechain/go-said/log"
	"gopkg.in/urfave/cli.v1"
)

var (
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	LogJSONFlag = cli.BoolFlag{
		Name:  "log.json",
		Usage: "Format logs with JSON",
	}
)

// Flags holds all command-line flags required for debugging.
var Flags = []cli.Flag{
	VerbosityFlag,
	LogJSONFlag,
}

// Config is the logging section of the configuration file.
type Config struct {
	Verbosity int
	JSON      bool
}

// DefaultConfig logs at info level to the terminal.
var DefaultConfig = Config{Verbosity: 3}

// ApplyFlags overrides cfg with the flags set on the command line.
func ApplyFlags(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet(VerbosityFlag.Name) {
		cfg.Verbosity = ctx.GlobalInt(VerbosityFlag.Name)
	}
	if ctx.GlobalIsSet(LogJSONFlag.Name) {
		cfg.JSON = ctx.GlobalBool(LogJSONFlag.Name)
	}
}

// Setup installs the root logger, writing to stderr.
func Setup(cfg Config) {
	var (
		output   io.Writer = os.Stderr
		usecolor           = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	log.SetDefault(log.NewLogger(newHandler(output, cfg, usecolor)))
}

func newHandler(w io.Writer, cfg Config, usecolor bool) slog.Handler {
	level := log.FromVerbosity(cfg.Verbosity)
	if cfg.JSON {
		return log.JSONHandlerWithLevel(w, level)
	}
	return log.NewTerminalHandlerWithLevel(w, level, usecolor)
}
