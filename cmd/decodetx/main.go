package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/ethdecode/v3swap/internal/config"
	"github.com/ethdecode/v3swap/internal/decoder"
	"github.com/ethdecode/v3swap/internal/eth"
	"github.com/ethdecode/v3swap/internal/output"
)

// Exit codes: 0 success, 1 usage error (bad flags, missing RPC_URL,
// failure to connect), 2 decode failure (any *decoder.Error kind:
// NotFound/Reverted/NotUniswapV3/Unselectable/RpcError/InvalidInput).
const (
	exitOK           = 0
	exitUsageError   = 1
	exitDecodeFailed = 2
)

func main() {
	flags := flag.NewFlagSet("decodetx", flag.ContinueOnError)
	returnAll := flags.Bool("all", false, "include every candidate sequence considered and the selection debug info")

	// Flags may come before or after the tx hash.
	var positional []string
	args := os.Args[1:]
	for {
		if err := flags.Parse(args); err != nil {
			os.Exit(exitUsageError)
		}
		if flags.NArg() == 0 {
			break
		}
		positional = append(positional, flags.Arg(0))
		args = flags.Args()[1:]
	}

	if len(positional) != 1 {
		fmt.Fprintln(os.Stderr, "usage: decodetx <tx_hash> [--all]")
		os.Exit(exitUsageError)
	}
	txHash := positional[0]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.RPC.URL == "" {
		fmt.Fprintln(os.Stderr, "RPC_URL is not set")
		os.Exit(exitUsageError)
	}

	output.NewLogger(cfg.Logging)

	client, err := eth.NewClient(cfg.RPC)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Ethereum node")
		os.Exit(exitUsageError)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	dec := decoder.New(cfg.Decode)

	result, err := dec.Decode(ctx, client, txHash, *returnAll)
	if err != nil {
		var decErr *decoder.Error
		if errors.As(err, &decErr) {
			log.Error().Err(err).Str("kind", decErr.Kind.String()).Msg("Decode failed")
			os.Exit(exitDecodeFailed)
		}
		log.Error().Err(err).Msg("Decode failed")
		os.Exit(exitDecodeFailed)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Error().Err(err).Msg("Failed to write result")
		os.Exit(exitDecodeFailed)
	}

	os.Exit(exitOK)
}
