// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command txverify validates a single Conway-era Cardano transaction
// supplied as canonical hex CBOR and prints the resulting verdict as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/blinklabs-io/txverify/ledger/conway"
	"github.com/blinklabs-io/txverify/txverify"
	"github.com/blinklabs-io/txverify/validate"
)

type cliFlags struct {
	Flagset   *flag.FlagSet
	TxHex     string
	TxFile    string
	Slot      uint64
	Epoch     uint64
	NetworkId uint
	Debug     bool
}

func newCliFlags() *cliFlags {
	f := &cliFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.TxHex,
		"tx",
		"",
		"canonical hex CBOR of the transaction to validate",
	)
	f.Flagset.StringVar(
		&f.TxFile,
		"tx-file",
		"",
		"path to a file containing the hex CBOR (defaults to stdin if neither -tx nor -tx-file is set)",
	)
	f.Flagset.Uint64Var(
		&f.Slot,
		"slot",
		0,
		"current slot number to validate the transaction's validity interval against",
	)
	f.Flagset.Uint64Var(
		&f.Epoch,
		"epoch",
		0,
		"current epoch number to validate pool retirement bounds against",
	)
	f.Flagset.UintVar(
		&f.NetworkId,
		"network-id",
		1,
		"expected network id (0 = testnet, 1 = mainnet)",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}

func (f *cliFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
}

func readTxHex(f *cliFlags) (string, error) {
	switch {
	case f.TxHex != "":
		return f.TxHex, nil
	case f.TxFile != "":
		data, err := os.ReadFile(f.TxFile)
		if err != nil {
			return "", fmt.Errorf("reading tx file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading tx from stdin: %w", err)
		}
		return string(data), nil
	}
}

func main() {
	f := newCliFlags()
	f.Parse()

	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)

	hexCbor, err := readTxHex(f)
	if err != nil {
		logger.Error("failed to read transaction", "error", err)
		os.Exit(1)
	}

	ctx := &validate.Context{
		ProtocolParameters: &conway.ConwayProtocolParameters{},
		CurrentSlot:        f.Slot,
		CurrentEpoch:       f.Epoch,
		NetworkId:          f.NetworkId,
	}

	result, err := txverify.ValidateHex(hexCbor, ctx, nil, logger)
	if err != nil {
		fmt.Fprintf(
			os.Stderr,
			"transaction rejected before validation: %s\n",
			err,
		)
		os.Exit(2)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))

	if !result.Accepted() {
		os.Exit(1)
	}
}
